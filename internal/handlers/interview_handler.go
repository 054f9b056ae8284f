package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type InterviewHandler struct {
	interviews services.InterviewService
}

func NewInterviewHandler(interviews services.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

// HandleStart handles POST /interviews
func (h *InterviewHandler) HandleStart(c *fiber.Ctx) error {
	var req models.StartInterviewRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, err := h.interviews.Start(c.UserContext(), currentUser(c), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleCurrent handles GET /interviews/current
func (h *InterviewHandler) HandleCurrent(c *fiber.Ctx) error {
	resp, err := h.interviews.Current(c.UserContext(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleAnswer handles POST /interviews/current/answers
func (h *InterviewHandler) HandleAnswer(c *fiber.Ctx) error {
	var req models.AnswerRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, err := h.interviews.Answer(c.UserContext(), currentUser(c), req.Answer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleAbandon handles DELETE /interviews/current
func (h *InterviewHandler) HandleAbandon(c *fiber.Ctx) error {
	if err := h.interviews.Abandon(c.UserContext(), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleHistory handles GET /interviews/history?limit=N
func (h *InterviewHandler) HandleHistory(c *fiber.Ctx) error {
	summaries, err := h.interviews.History(c.UserContext(), currentUser(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"interviews": summaries,
	})
}
