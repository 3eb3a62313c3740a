package application

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// DefaultSearchTerm is used when a restaurant search carries no query.
const DefaultSearchTerm = "restaurants"

// restaurantQueryService is the concrete implementation of RestaurantQueryService.
type restaurantQueryService struct {
	places PlaceLookup
	repo   SubmissionRepository
}

// NewRestaurantQueryService creates a new restaurant query service.
func NewRestaurantQueryService(places PlaceLookup, repo SubmissionRepository) RestaurantQueryService {
	return &restaurantQueryService{places: places, repo: repo}
}

// Search fetches restaurants and all submissions concurrently, then merges
// the per-place aggregate onto the restaurants.
func (s *restaurantQueryService) Search(ctx context.Context, query RestaurantQuery) (*RestaurantSearchResult, error) {
	term := strings.TrimSpace(query.Term)
	if term == "" {
		term = DefaultSearchTerm
	}

	var (
		restaurants []domain.Restaurant
		submissions []domain.Submission
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		found, err := s.places.Search(groupCtx, term)
		restaurants = found
		return err
	})
	group.Go(func() error {
		all, err := s.repo.Find(groupCtx, SubmissionFilter{})
		submissions = all
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := domain.MergeGloveInfo(restaurants, domain.AggregateGloveInfo(submissions))
	if query.ExcludeLatex {
		merged = domain.ExcludeLatest(merged, domain.GloveLatex)
	}

	return &RestaurantSearchResult{
		Source:      s.places.Source(),
		LiveLookup:  s.places.Live(),
		Restaurants: merged,
	}, nil
}

func (s *restaurantQueryService) Reported(ctx context.Context, excludeLatex bool) ([]domain.RestaurantGloves, error) {
	submissions, err := s.repo.Find(ctx, SubmissionFilter{})
	if err != nil {
		return nil, err
	}
	reported := domain.ReportedRestaurants(submissions)
	if excludeLatex {
		reported = domain.ExcludeLatest(reported, domain.GloveLatex)
	}
	return reported, nil
}
