package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/interview-coach/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.ResumeAnalysis) error
	FindByID(id uuid.UUID) (*models.ResumeAnalysis, error)
	UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error
	UpdateResult(id uuid.UUID, result *AnalysisResult) error
	UpdateError(id uuid.UUID, errorMsg string) error
	FindPendingJobs(limit int) ([]models.ResumeAnalysis, error)
}

// AnalysisResult is the outcome of a finished resume analysis.
type AnalysisResult struct {
	ATSScore     int
	MissingTerms []string
	Suggestions  []string
	Summary      string
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.ResumeAnalysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.ResumeAnalysis, error) {
	var analysis models.ResumeAnalysis
	if err := r.db.Preload("Resume").Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	return r.update(id, map[string]any{"status": status})
}

func (r *analysisRepository) UpdateResult(id uuid.UUID, result *AnalysisResult) error {
	// Updating through the model runs the json serializer on the slices
	return r.updateModel(id, &models.ResumeAnalysis{
		Status:       models.StatusCompleted,
		ATSScore:     &result.ATSScore,
		MissingTerms: result.MissingTerms,
		Suggestions:  result.Suggestions,
		Summary:      &result.Summary,
	})
}

func (r *analysisRepository) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.update(id, map[string]any{
		"status":        models.StatusFailed,
		"error_message": errorMsg,
	})
}

func (r *analysisRepository) FindPendingJobs(limit int) ([]models.ResumeAnalysis, error) {
	var analyses []models.ResumeAnalysis
	err := r.db.
		Where("status = ?", models.StatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending jobs: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepository) update(id uuid.UUID, updates map[string]any) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&models.ResumeAnalysis{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *analysisRepository) updateModel(id uuid.UUID, values *models.ResumeAnalysis) error {
	values.UpdatedAt = time.Now()
	result := r.db.Model(&models.ResumeAnalysis{}).Where("id = ?", id).Updates(values)
	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
