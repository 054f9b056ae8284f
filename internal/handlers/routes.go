package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handlers groups everything SetupRoutes mounts. Nil resume handlers leave
// the resume routes unmounted.
type Handlers struct {
	Auth      *AuthHandler
	Catalog   *CatalogHandler
	Interview *InterviewHandler
	Tutor     *TutorHandler
	Chat      *CommunicationHandler
	Speech    *SpeechHandler
	Upload    *UploadHandler
	Analyze   *AnalyzeHandler
	Result    *ResultHandler
	Tokens    TokenValidator
}

func SetupRoutes(app *fiber.App, h *Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/auth/register", h.Auth.HandleRegister)
	api.Post("/auth/login", h.Auth.HandleLogin)
	api.Get("/catalog", h.Catalog.HandleGetCatalog)

	// The auth middleware is mounted on the /api/v1 prefix, so public routes
	// must stay registered above this line
	protected := api.Group("", RequireAuth(h.Tokens))

	protected.Post("/interviews", h.Interview.HandleStart)
	protected.Get("/interviews/current", h.Interview.HandleCurrent)
	protected.Post("/interviews/current/answers", h.Interview.HandleAnswer)
	protected.Delete("/interviews/current", h.Interview.HandleAbandon)
	protected.Get("/interviews/history", h.Interview.HandleHistory)

	protected.Post("/tutor/explain", h.Tutor.HandleExplain)

	protected.Post("/communication/start", h.Chat.HandleStart)
	protected.Get("/communication/current", h.Chat.HandleCurrent)
	protected.Post("/communication/answer", h.Chat.HandleAnswer)
	protected.Post("/communication/next", h.Chat.HandleNext)
	protected.Delete("/communication/current", h.Chat.HandleStop)

	protected.Post("/speech", h.Speech.HandleSynthesize)

	if h.Upload != nil && h.Analyze != nil && h.Result != nil {
		protected.Post("/resumes", h.Upload.HandleUpload)
		protected.Post("/resumes/analyze", h.Analyze.HandleAnalyze)
		protected.Get("/resumes/analyses/:id", h.Result.HandleGetResult)
		protected.Post("/resumes/analyses/:id/speech", h.Result.HandleSpeech)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Interview Coach API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/register",
				"POST /api/v1/auth/login",
				"GET /api/v1/catalog",
				"POST /api/v1/interviews",
				"GET /api/v1/interviews/current",
				"POST /api/v1/interviews/current/answers",
				"DELETE /api/v1/interviews/current",
				"GET /api/v1/interviews/history",
				"POST /api/v1/tutor/explain",
				"POST /api/v1/communication/start",
				"GET /api/v1/communication/current",
				"POST /api/v1/communication/answer",
				"POST /api/v1/communication/next",
				"DELETE /api/v1/communication/current",
				"POST /api/v1/speech",
				"POST /api/v1/resumes",
				"POST /api/v1/resumes/analyze",
				"GET /api/v1/resumes/analyses/:id",
				"POST /api/v1/resumes/analyses/:id/speech",
			},
		})
	})
}

// ErrorHandler renders unhandled errors as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
