package application

import (
	"context"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// SubmissionRepository abstracts persistence of glove reports.
// Implementations return *domain.NotFoundError for unknown ids and wrap
// storage failures in *domain.PersistenceError. Find results are ordered by
// CreatedAt descending, ties by ID descending.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *domain.Submission) error
	Find(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
	FindByID(ctx context.Context, id string) (*domain.Submission, error)
	Update(ctx context.Context, submission *domain.Submission) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// PlaceLookup searches an external catalogue of restaurants.
type PlaceLookup interface {
	Search(ctx context.Context, query string) ([]domain.Restaurant, error)
	// Source names where results come from, surfaced to clients as-is.
	Source() string
	// Live is false when the lookup serves fixed sample data.
	Live() bool
}

// SubmissionFilter expresses search criteria for submissions.
type SubmissionFilter struct {
	PlaceID string
}

// SubmissionQueryService describes submission read use-cases.
type SubmissionQueryService interface {
	List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error)
	Detail(ctx context.Context, id string) (*domain.Submission, error)
}

// SubmissionCommandService handles writing use-cases.
type SubmissionCommandService interface {
	Submit(ctx context.Context, cmd SubmitGloveReportCommand) (*domain.Submission, error)
	Update(ctx context.Context, id string, cmd UpdateGloveReportCommand) (*domain.Submission, error)
	Delete(ctx context.Context, id string) (string, error)
}

// RestaurantQueryService combines external restaurants with report summaries.
type RestaurantQueryService interface {
	Search(ctx context.Context, query RestaurantQuery) (*RestaurantSearchResult, error)
	Reported(ctx context.Context, excludeLatex bool) ([]domain.RestaurantGloves, error)
}

// SubmitGloveReportCommand captures anonymous report input.
type SubmitGloveReportCommand struct {
	PlaceID        string
	RestaurantName string
	Address        string
	GloveType      string
	Notes          string
	SubmittedBy    string
}

// UpdateGloveReportCommand carries the mutable fields of a report.
type UpdateGloveReportCommand struct {
	GloveType   string
	Notes       string
	SubmittedBy string
}

// RestaurantQuery controls a restaurant search.
type RestaurantQuery struct {
	Term         string
	ExcludeLatex bool
}

// RestaurantSearchResult is the merged view plus where the restaurants came from.
type RestaurantSearchResult struct {
	Source      string
	LiveLookup  bool
	Restaurants []domain.RestaurantGloves
}
