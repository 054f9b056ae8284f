package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/handlers"
	"alfredoptarigan/interview-coach/internal/interview"
	"alfredoptarigan/interview-coach/internal/repositories"
	"alfredoptarigan/interview-coach/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	catalog, err := config.LoadCatalog(cfg.Interview.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration, cfg.Auth.BcryptCost)
	speechService := services.NewSpeechService(cfg.Murf.APIKey, cfg.Murf.BaseURL, cfg.Murf.DefaultVoice)
	if !speechService.Available() {
		log.Println("⚠️  MURF_API_KEY not set, speech endpoints will return 503")
	}

	var sessions services.SessionStore
	var chats services.ChatStore
	if cfg.Redis.URL != "" {
		redisClient, err := services.ConnectRedis(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Redis session store: %v", err)
		}
		defer redisClient.Close()
		sessions = services.NewRedisSessionStore(redisClient, cfg.Interview.SessionTTL)
		chats = services.NewRedisChatStore(redisClient, cfg.Interview.SessionTTL)
		log.Println("✅ Redis session store initialized")
	} else {
		sessions = services.NewMemorySessionStore(cfg.Interview.SessionTTL)
		chats = services.NewMemoryChatStore(cfg.Interview.SessionTTL)
		log.Println("✅ In-memory session store initialized")
	}
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant only enriches resume analysis, so the API runs without it
	var references services.ReferenceStore
	store, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Printf("⚠️  Qdrant unavailable, analyses run without reference context: %v", err)
	} else if err := store.InitCollection(context.Background()); err != nil {
		log.Printf("⚠️  Qdrant collection unavailable, analyses run without reference context: %v", err)
	} else {
		references = store
		log.Println("✅ Qdrant initialized successfully")
	}

	interviewService := services.NewInterviewService(
		interview.NewGenerator(geminiService),
		sessions,
		interviewRepo,
		catalog.MaxQuestions,
	)

	analyzer := services.NewResumeAnalyzer(
		analysisRepo,
		resumeRepo,
		geminiService,
		references,
		services.NewTextExtractor(geminiService),
		cfg.Worker.RetryMaxAttempts,
	)
	log.Println("✅ Resume analyzer initialized")

	// Initialize worker
	worker := services.NewWorker(analysisRepo, analyzer, cfg.Worker.Concurrency)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Interview Coach API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.SetupRoutes(app, &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Catalog:   handlers.NewCatalogHandler(catalog, speechService),
		Interview: handlers.NewInterviewHandler(interviewService),
		Tutor:     handlers.NewTutorHandler(services.NewTutorService(geminiService)),
		Chat:      handlers.NewCommunicationHandler(services.NewCommunicationService(geminiService, chats)),
		Speech:    handlers.NewSpeechHandler(speechService),
		Upload:    handlers.NewUploadHandler(resumeRepo, storageService, cfg.Storage.MaxFileSize),
		Analyze:   handlers.NewAnalyzeHandler(analysisRepo, resumeRepo, worker),
		Result:    handlers.NewResultHandler(analysisRepo, speechService),
		Tokens:    authService,
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
