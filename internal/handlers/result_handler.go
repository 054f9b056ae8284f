package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

type ResultHandler struct {
	analysisRepo repositories.AnalysisRepository
	speech       services.SpeechService
}

func NewResultHandler(analysisRepo repositories.AnalysisRepository, speech services.SpeechService) *ResultHandler {
	return &ResultHandler{
		analysisRepo: analysisRepo,
		speech:       speech,
	}
}

// ownAnalysis loads the analysis named by :id if it belongs to the caller.
func (h *ResultHandler) ownAnalysis(c *fiber.Ctx) (*models.ResumeAnalysis, error) {
	analysisID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis ID format",
		})
	}

	analysis, err := h.analysisRepo.FindByID(analysisID)
	if err != nil || analysis.UserID != currentUser(c) {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}
	return analysis, nil
}

// HandleGetResult handles GET /resumes/analyses/:id
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	analysis, err := h.ownAnalysis(c)
	if analysis == nil {
		return err
	}

	response := models.AnalysisResultResponse{
		ID:       analysis.ID.String(),
		Status:   string(analysis.Status),
		JobTitle: analysis.JobTitle,
	}

	if analysis.Status == models.StatusCompleted {
		data := &models.AnalysisData{
			MissingTerms: analysis.MissingTerms,
			Suggestions:  analysis.Suggestions,
		}
		if analysis.ATSScore != nil {
			data.ATSScore = *analysis.ATSScore
		}
		if analysis.Summary != nil {
			data.Summary = *analysis.Summary
		}
		response.Result = data
	}

	if analysis.Status == models.StatusFailed {
		response.ErrorMessage = analysis.ErrorMessage
	}

	return c.JSON(response)
}

// HandleSpeech handles POST /resumes/analyses/:id/speech?voice_id=...
func (h *ResultHandler) HandleSpeech(c *fiber.Ctx) error {
	analysis, err := h.ownAnalysis(c)
	if analysis == nil {
		return err
	}

	if analysis.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Analysis is not completed yet",
		})
	}

	return sendAudio(c, h.speech, analysis.SpeechText(), c.Query("voice_id"))
}
