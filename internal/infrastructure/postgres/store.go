package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/application"
	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const migrateLockID int64 = 48151623

// Open connects to Postgres and migrates the submissions table.
func Open(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&SubmissionModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return db, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)", migrateLockID); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)", migrateLockID)
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string, lockID int64) error {
	_, err := conn.ExecContext(ctx, query, lockID)
	return err
}

// SubmissionRepository implements the submission port with GORM + Postgres.
type SubmissionRepository struct {
	db *gorm.DB
}

var _ application.SubmissionRepository = (*SubmissionRepository)(nil)

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create inserts a submission and reflects the stored precision back.
func (r *SubmissionRepository) Create(ctx context.Context, submission *domain.Submission) error {
	model := submissionToModel(submission)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return &domain.PersistenceError{Op: "insert submission", Err: err}
	}
	submission.CreatedAt = model.CreatedAt
	submission.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *SubmissionRepository) Find(ctx context.Context, filter application.SubmissionFilter) ([]domain.Submission, error) {
	var models []SubmissionModel
	tx := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if placeID := strings.TrimSpace(filter.PlaceID); placeID != "" {
		tx = tx.Where("place_id = ?", placeID)
	}
	if err := tx.Find(&models).Error; err != nil {
		return nil, &domain.PersistenceError{Op: "list submissions", Err: err}
	}
	res := make([]domain.Submission, 0, len(models))
	for _, m := range models {
		res = append(res, submissionFromModel(m))
	}
	return res, nil
}

func (r *SubmissionRepository) FindByID(ctx context.Context, id string) (*domain.Submission, error) {
	var model SubmissionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.SubmissionNotFound(id)
		}
		return nil, &domain.PersistenceError{Op: "get submission", Err: err}
	}
	submission := submissionFromModel(model)
	return &submission, nil
}

// Update only touches the mutable columns.
func (r *SubmissionRepository) Update(ctx context.Context, submission *domain.Submission) error {
	model := submissionToModel(submission)
	result := r.db.WithContext(ctx).
		Model(&SubmissionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"glove_type":   model.GloveType,
			"notes":        model.Notes,
			"submitted_by": model.SubmittedBy,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return &domain.PersistenceError{Op: "update submission", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return domain.SubmissionNotFound(model.ID)
	}
	submission.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *SubmissionRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&SubmissionModel{}, "id = ?", id)
	if result.Error != nil {
		return &domain.PersistenceError{Op: "delete submission", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return domain.SubmissionNotFound(id)
	}
	return nil
}

func (r *SubmissionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
