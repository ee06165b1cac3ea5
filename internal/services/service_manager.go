package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/EduPort-F-2025/portfolio-service/internal/cache"
	"github.com/EduPort-F-2025/portfolio-service/internal/events"
	"github.com/EduPort-F-2025/portfolio-service/internal/extraction"
	"github.com/EduPort-F-2025/portfolio-service/internal/store"
	"github.com/EduPort-F-2025/portfolio-service/internal/validator"
)

// ServiceManagerConfig holds the collaborators shared by all services.
type ServiceManagerConfig struct {
	Store     *store.Store
	Extractor extraction.Extractor
	Publisher events.EventPublisher

	// Optional: enables overview caching when present
	RedisClient *redis.Client
}

// serviceManager implements ServiceManager
type serviceManager struct {
	config    ServiceManagerConfig
	logger    *slog.Logger
	validator *validator.Validator

	portfolioService  PortfolioService
	adminService      AdminService
	enrichmentService *ProofEnrichmentService

	initialized bool
	shutdown    bool
	mu          sync.Mutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(config ServiceManagerConfig, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	overview := cache.NewCacheHelper(config.RedisClient, cache.OverviewCacheConfig.Prefix)

	enrichment := NewProofEnrichmentService(
		events.NewGoChannelBus(logger),
		config.Store,
		config.Extractor,
		config.Publisher,
		logger,
	)

	return &serviceManager{
		config:            config,
		logger:            logger,
		validator:         validator,
		enrichmentService: enrichment,
		portfolioService:  NewPortfolioService(config.Store, enrichment, config.Publisher, overview, logger, validator),
		adminService:      NewAdminService(config.Store, overview, logger),
	}
}

func (m *serviceManager) Portfolio() PortfolioService {
	return m.portfolioService
}

func (m *serviceManager) Admin() AdminService {
	return m.adminService
}

// Initialize loads (or seeds) the state and starts the enrichment
// worker.
func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	if err := m.config.Store.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize state store: %w", err)
	}
	if err := m.enrichmentService.Start(ctx); err != nil {
		return fmt.Errorf("failed to start enrichment service: %w", err)
	}

	m.initialized = true
	m.logger.Info("Services initialized")
	return nil
}

// Shutdown stops background work and closes the event publisher.
func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shutdown {
		return nil
	}

	if err := m.enrichmentService.Shutdown(ctx); err != nil {
		m.logger.Error("Enrichment shutdown failed", "error", err)
	}
	if m.config.Publisher != nil {
		if err := m.config.Publisher.Close(); err != nil {
			m.logger.Error("Event publisher close failed", "error", err)
		}
	}

	m.shutdown = true
	m.logger.Info("Services shut down")
	return nil
}
