package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/models"
	"alfredoptarigan/interview-coach/internal/services"
)

type SpeechHandler struct {
	speech services.SpeechService
}

func NewSpeechHandler(speech services.SpeechService) *SpeechHandler {
	return &SpeechHandler{speech: speech}
}

// HandleSynthesize handles POST /speech
func (h *SpeechHandler) HandleSynthesize(c *fiber.Ctx) error {
	var req models.SpeechRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	return sendAudio(c, h.speech, req.Text, req.VoiceID)
}

func sendAudio(c *fiber.Ctx, speech services.SpeechService, text, voiceID string) error {
	if speech == nil || !speech.Available() {
		return respondError(c, services.ErrSpeechUnavailable)
	}

	audio, err := speech.Synthesize(c.UserContext(), text, voiceID)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not generate audio",
		})
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}
