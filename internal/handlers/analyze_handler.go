package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

type AnalyzeHandler struct {
	analysisRepo repositories.AnalysisRepository
	resumeRepo   repositories.ResumeRepository
	worker       services.Worker
}

func NewAnalyzeHandler(
	analysisRepo repositories.AnalysisRepository,
	resumeRepo repositories.ResumeRepository,
	worker services.Worker,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisRepo: analysisRepo,
		resumeRepo:   resumeRepo,
		worker:       worker,
	}
}

// HandleAnalyze handles POST /resumes/analyze
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resumeID := uuid.MustParse(req.ResumeID) // validated by the uuid tag
	userID := currentUser(c)

	resume, err := h.resumeRepo.FindByID(resumeID)
	if err != nil || resume.UserID != userID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resume not found",
		})
	}

	analysis := &models.ResumeAnalysis{
		ID:        uuid.New(),
		UserID:    userID,
		ResumeID:  resume.ID,
		JobTitle:  strings.TrimSpace(req.JobTitle),
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.analysisRepo.Create(analysis); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create analysis job",
		})
	}

	h.worker.EnqueueJob(analysis.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.AnalyzeResponse{
		ID:     analysis.ID.String(),
		Status: string(models.StatusQueued),
	})
}
