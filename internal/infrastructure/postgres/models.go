package postgres

import (
	"time"

	"github.com/sngm3741/latex-free-eats/api/internal/public/domain"
)

// SubmissionModel is the GORM model behind the glove_submissions table.
type SubmissionModel struct {
	ID             string    `gorm:"primaryKey"`
	PlaceID        string    `gorm:"not null;index:idx_glove_submissions_place_created,priority:1"`
	RestaurantName string    `gorm:"not null"`
	Address        string    `gorm:"not null"`
	GloveType      string    `gorm:"not null;check:chk_glove_submissions_glove_type,glove_type IN ('vinyl','nitrile','latex','none')"`
	Notes          string    `gorm:"not null;default:''"`
	SubmittedBy    string    `gorm:"not null;default:'anonymous'"`
	CreatedAt      time.Time `gorm:"not null;index;index:idx_glove_submissions_place_created,priority:2"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName pins the table name shared with the other stores.
func (SubmissionModel) TableName() string {
	return "glove_submissions"
}

// Postgres timestamps keep microseconds.
func submissionToModel(s *domain.Submission) SubmissionModel {
	return SubmissionModel{
		ID:             s.ID,
		PlaceID:        s.PlaceID,
		RestaurantName: s.RestaurantName,
		Address:        s.Address,
		GloveType:      s.GloveType.String(),
		Notes:          s.Notes,
		SubmittedBy:    s.SubmittedBy,
		CreatedAt:      s.CreatedAt.UTC().Truncate(time.Microsecond),
		UpdatedAt:      s.UpdatedAt.UTC().Truncate(time.Microsecond),
	}
}

func submissionFromModel(m SubmissionModel) domain.Submission {
	return domain.Submission{
		ID:             m.ID,
		PlaceID:        m.PlaceID,
		RestaurantName: m.RestaurantName,
		Address:        m.Address,
		GloveType:      domain.GloveType(m.GloveType),
		Notes:          m.Notes,
		SubmittedBy:    m.SubmittedBy,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}
