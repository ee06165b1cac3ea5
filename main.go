package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/EduPort-F-2025/portfolio-service/internal/config"
	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/extraction"
	"github.com/EduPort-F-2025/portfolio-service/internal/handlers"
	"github.com/EduPort-F-2025/portfolio-service/internal/repositories"
	repopostgres "github.com/EduPort-F-2025/portfolio-service/internal/repositories/postgres"
	reporedis "github.com/EduPort-F-2025/portfolio-service/internal/repositories/redis"
	"github.com/EduPort-F-2025/portfolio-service/internal/services"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
	"github.com/EduPort-F-2025/portfolio-service/internal/utils"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize snapshot storage
	snapshots, redisClient, err := newSnapshotStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize snapshot storage: %v", err)
	}

	// Initialize state store
	stateStore := store.New(snapshots, slogLogger)

	// Initialize document extraction collaborator
	var extractor extraction.Extractor
	if cfg.Gemini.APIKey != "" {
		extractor, err = extraction.NewGeminiExtractor(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize extraction client: %v", err)
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, proof extraction disabled")
		extractor = extraction.Disabled{}
	}

	// Initialize event publisher
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize event publisher: %v", err)
		}
	} else {
		publisher = events.NewMockEventPublisher(slogLogger)
	}

	// Initialize validator
	validator := validator.New()

	// Initialize services
	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Store:       stateStore,
		Extractor:   extractor,
		Publisher:   publisher,
		RedisClient: redisClient,
	}, slogLogger, validator)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, stateStore, snapshots, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "snapshot_backend", cfg.SnapshotBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := serviceManager.Shutdown(ctx); err != nil {
		logger.Error("Service shutdown failed", "error", err)
	}
	if err := snapshots.Close(); err != nil {
		logger.Error("Snapshot storage close failed", "error", err)
	}

	logger.Info("Server exited")
}

// newSnapshotStore selects the durable backend for the single
// state snapshot. The redis client is returned separately so the
// overview cache can share it.
func newSnapshotStore(cfg *config.Config) (repositories.SnapshotStore, *redis.Client, error) {
	switch cfg.SnapshotBackend {
	case config.BackendRedis:
		client, err := reporedis.NewClient(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return reporedis.NewSnapshotRedis(client, cfg.SnapshotKey), client, nil

	case config.BackendPostgres:
		db, err := gorm.Open(gormpostgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		snapshots, err := repopostgres.NewSnapshotPostgreSQL(db, cfg.SnapshotKey)
		if err != nil {
			return nil, nil, err
		}
		return snapshots, nil, nil

	case config.BackendMemory:
		return repositories.NewMemorySnapshotStore(), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown snapshot backend %q", cfg.SnapshotBackend)
	}
}
