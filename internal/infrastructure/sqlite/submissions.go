package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// timestampLayout is fixed width so TEXT ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

const submissionColumns = `id, place_id, restaurant_name, address, glove_type, notes, submitted_by, created_at, updated_at`

// SubmissionRepository stores glove reports in SQLite.
type SubmissionRepository struct {
	db *sql.DB
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

// NewSubmissionRepository wraps an opened database.
func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a new submission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	query := `INSERT INTO glove_submissions (` + submissionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		submission.ID,
		submission.PlaceID,
		submission.RestaurantName,
		submission.Address,
		submission.GloveType.String(),
		submission.Notes,
		submission.SubmittedBy,
		formatTimestamp(submission.CreatedAt),
		formatTimestamp(submission.UpdatedAt),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "insert submission", Err: err}
	}
	return nil
}

// Find lists submissions newest first, optionally for a single place.
func (r *SubmissionRepository) Find(ctx context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	placeID := strings.TrimSpace(filter.PlaceID)
	query := `
		SELECT ` + submissionColumns + `
		FROM glove_submissions
		WHERE (? = '' OR place_id = ?)
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, placeID, placeID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list submissions", Err: err}
	}
	defer rows.Close()

	submissions := make([]domain.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "scan submission", Err: err}
		}
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "iterate submissions", Err: err}
	}
	return submissions, nil
}

// FindByID retrieves a single submission by ID.
func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM glove_submissions WHERE id = ?`
	submission, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.SubmissionNotFound(id)
	}
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get submission", Err: err}
	}
	return &submission, nil
}

// Update rewrites the mutable fields of a submission.
func (r *SubmissionRepository) Update(ctx context.Context, submission *domain.Submission) error {
	query := `
		UPDATE glove_submissions
		SET glove_type = ?, notes = ?, submitted_by = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		submission.GloveType.String(),
		submission.Notes,
		submission.SubmittedBy,
		formatTimestamp(submission.UpdatedAt),
		submission.ID,
	)
	if err != nil {
		return &domain.PersistenceError{Op: "update submission", Err: err}
	}
	return requireAffected(result, submission.ID)
}

// Delete removes a submission.
func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM glove_submissions WHERE id = ?`, id)
	if err != nil {
		return &domain.PersistenceError{Op: "delete submission", Err: err}
	}
	return requireAffected(result, id)
}

// Ping checks the database connection.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return &domain.PersistenceError{Op: "rows affected", Err: err}
	}
	if affected == 0 {
		return domain.SubmissionNotFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (domain.Submission, error) {
	var s domain.Submission
	var gloveType, createdAt, updatedAt string
	if err := row.Scan(&s.ID, &s.PlaceID, &s.RestaurantName, &s.Address, &gloveType, &s.Notes, &s.SubmittedBy, &createdAt, &updatedAt); err != nil {
		return domain.Submission{}, err
	}
	s.GloveType = domain.GloveType(gloveType)

	var err error
	if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Submission{}, err
	}
	if s.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return domain.Submission{}, err
	}
	return s, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}
