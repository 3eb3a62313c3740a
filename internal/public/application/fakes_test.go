package application

import (
	"context"
	"sort"
	"sync"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

type memoryRepository struct {
	mu      sync.Mutex
	records map[string]domain.Submission
	findErr error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{records: make(map[string]domain.Submission)}
}

func (r *memoryRepository) Create(_ context.Context, submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[submission.ID] = *submission
	return nil
}

func (r *memoryRepository) Find(_ context.Context, filter SubmissionFilter) ([]domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	result := make([]domain.Submission, 0, len(r.records))
	for _, s := range r.records {
		if filter.PlaceID != "" && s.PlaceID != filter.PlaceID {
			continue
		}
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].NewerThan(result[j]) })
	return result, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (*domain.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.records[id]
	if !ok {
		return nil, domain.SubmissionNotFound(id)
	}
	return &s, nil
}

func (r *memoryRepository) Update(_ context.Context, submission *domain.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[submission.ID]; !ok {
		return domain.SubmissionNotFound(submission.ID)
	}
	r.records[submission.ID] = *submission
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return domain.SubmissionNotFound(id)
	}
	delete(r.records, id)
	return nil
}

func (r *memoryRepository) Ping(context.Context) error {
	return nil
}

func (r *memoryRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

type stubLookup struct {
	restaurants []domain.Restaurant
	err         error
	lastQuery   string
}

func (l *stubLookup) Search(_ context.Context, query string) ([]domain.Restaurant, error) {
	l.lastQuery = query
	if l.err != nil {
		return nil, l.err
	}
	return l.restaurants, nil
}

func (l *stubLookup) Source() string { return "stub" }

func (l *stubLookup) Live() bool { return true }
