package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

type submissionCommandService struct {
	repo SubmissionRepository
	now  func() time.Time
	id   func() string
}

// NewSubmissionCommandService creates a command service writing through repo.
func NewSubmissionCommandService(repo SubmissionRepository) SubmissionCommandService {
	return &submissionCommandService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
		id:   uuid.NewString,
	}
}

func (s *submissionCommandService) Submit(ctx context.Context, cmd SubmitGloveReportCommand) (*domain.Submission, error) {
	placeID := strings.TrimSpace(cmd.PlaceID)
	restaurantName := strings.TrimSpace(cmd.RestaurantName)
	address := strings.TrimSpace(cmd.Address)
	if placeID == "" || restaurantName == "" || address == "" {
		return nil, &domain.ValidationError{Message: "placeId, restaurantName, and address are required."}
	}
	gloveType, err := domain.ParseGloveType(cmd.GloveType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	submission := &domain.Submission{
		ID:             s.id(),
		PlaceID:        placeID,
		RestaurantName: restaurantName,
		Address:        address,
		GloveType:      gloveType,
		Notes:          strings.TrimSpace(cmd.Notes),
		SubmittedBy:    submitterOrAnonymous(cmd.SubmittedBy),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *submissionCommandService) Update(ctx context.Context, id string, cmd UpdateGloveReportCommand) (*domain.Submission, error) {
	gloveType, err := domain.ParseGloveType(cmd.GloveType)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	existing.GloveType = gloveType
	existing.Notes = strings.TrimSpace(cmd.Notes)
	existing.SubmittedBy = submitterOrAnonymous(cmd.SubmittedBy)
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *submissionCommandService) Delete(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

func submitterOrAnonymous(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.AnonymousSubmitter
	}
	return name
}

// submissionQueryService implements SubmissionQueryService.
type submissionQueryService struct {
	repo SubmissionRepository
}

// NewSubmissionQueryService creates a new SubmissionQueryService.
func NewSubmissionQueryService(repo SubmissionRepository) SubmissionQueryService {
	return &submissionQueryService{repo: repo}
}

func (s *submissionQueryService) List(ctx context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	filter.PlaceID = strings.TrimSpace(filter.PlaceID)
	return s.repo.Find(ctx, filter)
}

func (s *submissionQueryService) Detail(ctx context.Context, id string) (*domain.Submission, error) {
	return s.repo.FindByID(ctx, strings.TrimSpace(id))
}
