package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type TutorHandler struct {
	tutor services.TutorService
}

func NewTutorHandler(tutor services.TutorService) *TutorHandler {
	return &TutorHandler{tutor: tutor}
}

// HandleExplain handles POST /tutor/explain
func (h *TutorHandler) HandleExplain(c *fiber.Ctx) error {
	var req models.ExplainRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, err := h.tutor.Explain(c.UserContext(), req.Question)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
