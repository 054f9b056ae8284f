package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type CommunicationHandler struct {
	chats services.CommunicationService
}

func NewCommunicationHandler(chats services.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{chats: chats}
}

// HandleStart handles POST /communication/start
func (h *CommunicationHandler) HandleStart(c *fiber.Ctx) error {
	resp, err := h.chats.Start(c.UserContext(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// HandleCurrent handles GET /communication/current
func (h *CommunicationHandler) HandleCurrent(c *fiber.Ctx) error {
	resp, err := h.chats.Current(c.UserContext(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleAnswer handles POST /communication/answer
func (h *CommunicationHandler) HandleAnswer(c *fiber.Ctx) error {
	var req models.ChatAnswerRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	resp, err := h.chats.Answer(c.UserContext(), currentUser(c), req.Answer)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleNext handles POST /communication/next
func (h *CommunicationHandler) HandleNext(c *fiber.Ctx) error {
	resp, err := h.chats.Next(c.UserContext(), currentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleStop handles DELETE /communication/current
func (h *CommunicationHandler) HandleStop(c *fiber.Ctx) error {
	if err := h.chats.Stop(c.UserContext(), currentUser(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
