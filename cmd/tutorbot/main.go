package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tutorbot/internal/api"
	"tutorbot/internal/config"
	"tutorbot/internal/docstore"
	"tutorbot/internal/i18n"
	"tutorbot/internal/llm"
	"tutorbot/internal/ocr"
	"tutorbot/internal/repository"
	"tutorbot/internal/service"
	"tutorbot/internal/session"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize localization
	missing, err := i18n.Init(cfg.Locale.Default)
	if err != nil {
		logger.Fatal("Failed to initialize localization", zap.Error(err))
	}
	for locale, ids := range missing {
		logger.Warn("locale missing message IDs, falling back to default",
			zap.String("locale", locale),
			zap.Strings("ids", ids))
	}

	// Initialize metadata store
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	courseRepo := repository.NewCourseRepository(db)
	cacheRepo := repository.NewOCRCacheRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)

	// External adapters. Missing configuration disables an adapter but the
	// process still starts and serves in degraded mode.
	health := map[string]string{"database": "connected"}

	var docs service.DocumentStore
	if cfg.DocStore.UploadURL != "" {
		docs = docstore.New(cfg.DocStore.UploadURL, cfg.DocStore.Timeout)
		health["docstore"] = "configured"
	} else {
		logger.Warn("document store upload URL not set, document store disabled")
		health["docstore"] = "not configured"
	}

	var extractor ocr.Extractor
	if cfg.OCR.Endpoint != "" {
		extractor = ocr.NewHTTPExtractor(cfg.OCR.Endpoint, cfg.OCR.Timeout)
		health["ocr"] = "configured"
	} else {
		logger.Warn("OCR endpoint not set, text extraction disabled")
		health["ocr"] = "not configured"
	}

	if cfg.LLM.APIKey == "" {
		logger.Warn("completion API key not set, requests may fail against hosted providers")
	}
	completer := llm.New(cfg.LLM)
	health["llm"] = "configured"

	// Session store
	sessions := session.NewStore(
		time.Duration(cfg.Session.IdleTTLMinutes)*time.Minute,
		cfg.Locale.Default,
	)

	// Services
	materials := service.NewMaterialsService(courseRepo, cacheRepo, docs, extractor, logger)
	engine := service.NewEngine(courseRepo, materials, completer, cfg.Prompt, logger)
	chatService := service.NewChatService(sessions, engine, courseRepo, extractor, cfg, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, docs, extractor, completer, cfg.Prompt, logger)

	// Setup router
	router := api.SetupRouter(chatService, assignmentService, api.RouterConfig{
		AllowOrigins:   []string{"*"},
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Health:         health,
	})

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting tutorbot server", zap.String("address", cfg.Address()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
