package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

// InterviewRepository persists completed interview summaries.
type InterviewRepository interface {
	SaveSummary(ctx context.Context, userID uuid.UUID, summary *models.InterviewSummary) error
	LoadSummaries(ctx context.Context, userID uuid.UUID, limit int) ([]models.InterviewSummary, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

// SaveSummary implements InterviewRepository. The summary is stored under
// userID regardless of what its UserID field held.
func (r *interviewRepository) SaveSummary(ctx context.Context, userID uuid.UUID, summary *models.InterviewSummary) error {
	summary.UserID = userID
	if err := r.db.WithContext(ctx).Create(summary).Error; err != nil {
		return fmt.Errorf("failed to save interview summary: %w", err)
	}
	return nil
}

// LoadSummaries implements InterviewRepository, newest first. A limit of
// zero or less returns everything.
func (r *interviewRepository) LoadSummaries(ctx context.Context, userID uuid.UUID, limit int) ([]models.InterviewSummary, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var summaries []models.InterviewSummary
	if err := query.Find(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to load interview summaries: %w", err)
	}
	return summaries, nil
}
