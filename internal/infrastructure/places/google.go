package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

const (
	googleAPIBase = "https://maps.googleapis.com/maps/api/place"

	// SourceGoogle and SourceSample are reported to clients as the result source.
	SourceGoogle = "google_places_api"
	SourceSample = "sample_data_no_api_key"

	DefaultSearchArea = "New York City"
	DefaultTimeout    = 5 * time.Second
)

// Options tunes the Google client.
type Options struct {
	SearchArea string
	Timeout    time.Duration
	// BaseURL overrides the Places endpoint root.
	BaseURL string
}

// GoogleClient wraps the Google Places Text Search API.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	searchArea string
	httpClient *http.Client
}

var _ application.PlaceLookup = (*GoogleClient)(nil)

// NewGoogleClient creates a new Places client.
func NewGoogleClient(apiKey string, opts Options) *GoogleClient {
	area := strings.TrimSpace(opts.SearchArea)
	if area == "" {
		area = DefaultSearchArea
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		base = googleAPIBase
	}
	return &GoogleClient{
		apiKey:     apiKey,
		baseURL:    base,
		searchArea: area,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// New picks the live client when an API key is configured, otherwise the sample data.
func New(apiKey string, opts Options) application.PlaceLookup {
	if strings.TrimSpace(apiKey) == "" {
		return SampleLookup{}
	}
	return NewGoogleClient(strings.TrimSpace(apiKey), opts)
}

func (c *GoogleClient) Source() string { return SourceGoogle }

func (c *GoogleClient) Live() bool { return true }

// Search runs a text search for "<term> in <area>".
func (c *GoogleClient) Search(ctx context.Context, term string) ([]domain.Restaurant, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s in %s", term, c.searchArea))
	params.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/textsearch/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &domain.UpstreamError{Message: "Google Places API request could not be built", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Message: "Google Places API request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamError{
			Message: fmt.Sprintf("Google Places API request failed with status %d", resp.StatusCode),
		}
	}

	var result textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &domain.UpstreamError{Message: "Google Places API returned an unreadable response", Err: err}
	}

	if result.Status != "OK" && result.Status != "ZERO_RESULTS" {
		return nil, &domain.UpstreamError{
			Message: fmt.Sprintf("Google Places API error: %s", result.Status),
		}
	}

	restaurants := make([]domain.Restaurant, 0, len(result.Results))
	for _, place := range result.Results {
		restaurants = append(restaurants, domain.Restaurant{
			PlaceID:          place.PlaceID,
			Name:             place.Name,
			FormattedAddress: place.FormattedAddress,
			Rating:           place.Rating,
		})
	}
	return restaurants, nil
}

// API response types

type textSearchResponse struct {
	Status  string        `json:"status"`
	Results []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           *float64 `json:"rating"`
}
