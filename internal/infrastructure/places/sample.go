package places

import (
	"context"

	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// SampleLookup serves a fixed pair of restaurants when no API key is set.
type SampleLookup struct{}

var _ application.PlaceLookup = SampleLookup{}

func (SampleLookup) Source() string { return SourceSample }

func (SampleLookup) Live() bool { return false }

// Search ignores the term.
func (SampleLookup) Search(context.Context, string) ([]domain.Restaurant, error) {
	return SampleRestaurants(), nil
}

// SampleRestaurants returns a fresh copy of the sample set.
func SampleRestaurants() []domain.Restaurant {
	return []domain.Restaurant{
		{
			PlaceID:          "sample-1",
			Name:             "Sample Deli (configure GOOGLE_PLACES_API_KEY for live data)",
			FormattedAddress: "Midtown Manhattan, New York, NY",
			Rating:           rating(4.2),
		},
		{
			PlaceID:          "sample-2",
			Name:             "Sample Pizza Spot",
			FormattedAddress: "Lower Manhattan, New York, NY",
			Rating:           rating(4.5),
		},
	}
}

func rating(v float64) *float64 {
	return &v
}
