package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/services"
)

type CatalogHandler struct {
	catalog *config.Catalog
	speech  services.SpeechService
}

func NewCatalogHandler(catalog *config.Catalog, speech services.SpeechService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, speech: speech}
}

// HandleGetCatalog handles GET /catalog. Voices come from the speech
// provider when it is reachable, the catalog's list otherwise.
func (h *CatalogHandler) HandleGetCatalog(c *fiber.Ctx) error {
	resp := *h.catalog
	if h.speech != nil && h.speech.Available() {
		voices := h.speech.ListVoices(c.UserContext())
		resp.Voices = make([]config.CatalogVoice, 0, len(voices))
		for _, v := range voices {
			resp.Voices = append(resp.Voices, config.CatalogVoice{ID: v.ID, Name: v.Name})
		}
	}
	return c.JSON(resp)
}
