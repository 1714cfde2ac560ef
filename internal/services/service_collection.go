// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"zuna/internal/cache"
	"zuna/internal/config"
	"zuna/internal/database"
	"zuna/internal/events"
	"zuna/internal/models"
	"zuna/internal/push"
	"zuna/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection holds all services with dependency injection
type ServiceCollection struct {
	// Core Services
	BadgeService        BadgeService        `json:"-"`
	NotificationService NotificationService `json:"-"`
	ContentService      ContentService      `json:"-"`
	AnalysisService     AnalysisService     `json:"-"`

	// Repository Collection
	Repositories *repositories.Collection `json:"-"`

	// Infrastructure Components
	EventBus   events.EventBus   `json:"-"`
	PushClient push.Client       `json:"-"`
	Logger     *zap.Logger       `json:"-"`
	Config     *config.Config    `json:"-"`
	DBManager  *database.Manager `json:"-"`

	startTime   time.Time
	mu          sync.RWMutex
	initialized bool
	started     bool
}

// NewServiceCollection creates the fully wired service layer
func NewServiceCollection(
	dbManager *database.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) (*ServiceCollection, error) {
	if dbManager == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	collection := &ServiceCollection{
		DBManager: dbManager,
		Config:    cfg,
		Logger:    logger,
		startTime: time.Now(),
	}

	// Initialize in dependency order
	if err := collection.initializeInfrastructure(); err != nil {
		return nil, fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	if err := collection.initializeRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	if err := collection.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	collection.initialized = true
	logger.Info("Service collection initialized successfully")

	return collection, nil
}

// ===============================
// INITIALIZATION METHODS
// ===============================

// initializeInfrastructure sets up the event bus and the push client
func (sc *ServiceCollection) initializeInfrastructure() error {
	sc.Logger.Info("Initializing infrastructure components")

	sc.EventBus = events.NewInMemoryEventBus(events.DefaultEventBusConfig(), sc.Logger)

	if sc.Config.Push.Enabled && sc.Config.Features.EnablePushNotifications {
		sc.PushClient = push.NewExpoClient(push.Config{
			Endpoint:    sc.Config.Push.Endpoint,
			AccessToken: sc.Config.Push.AccessToken,
			Timeout:     sc.Config.Push.Timeout,
			MaxRetries:  sc.Config.Push.MaxRetries,
			BatchSize:   sc.Config.Push.BatchSize,
		}, sc.Logger)
	} else {
		sc.PushClient = push.NewDisabledClient(sc.Logger)
	}

	sc.Logger.Info("Infrastructure components initialized",
		zap.Bool("push_enabled", sc.Config.Push.Enabled && sc.Config.Features.EnablePushNotifications),
	)
	return nil
}

// initializeRepositories sets up the repository layer
func (sc *ServiceCollection) initializeRepositories() error {
	sc.Logger.Info("Initializing repositories")

	repoConfig := &repositories.RepositoryConfig{
		EnableQueryLogging: !sc.Config.IsProduction(),
		SlowQueryThreshold: sc.Config.Database.SlowQueryThreshold,
	}

	var err error
	sc.Repositories, err = repositories.NewCollection(sc.DBManager, sc.Logger, repoConfig)
	if err != nil {
		return fmt.Errorf("failed to create repository collection: %w", err)
	}

	sc.Logger.Info("Repositories initialized")
	return nil
}

// initializeServices wires the service layer in dependency order
func (sc *ServiceCollection) initializeServices() error {
	sc.Logger.Info("Initializing services")

	sc.NotificationService = NewNotificationService(
		sc.Repositories.Notification,
		sc.Repositories.Profile,
		sc.PushClient,
		sc.EventBus,
		sc.Logger,
	)

	sc.BadgeService = NewBadgeService(
		sc.Repositories.Badge,
		sc.Repositories.Activity,
		sc.Repositories.ColoringStats,
		sc.Repositories.Analysis,
		sc.Repositories.Profile,
		sc.NotificationService,
		sc.EventBus,
		&sc.Config.Badges,
		sc.Logger,
	)

	tipCache, discoverCache, expertCache, err := sc.buildContentCaches()
	if err != nil {
		return fmt.Errorf("failed to create content caches: %w", err)
	}

	sc.ContentService = NewContentService(
		sc.Repositories.Content,
		tipCache,
		discoverCache,
		expertCache,
		sc.Logger,
	)

	sc.AnalysisService = NewAnalysisService(
		sc.Repositories.Analysis,
		sc.BadgeService,
		sc.EventBus,
		sc.Logger,
	)

	sc.Logger.Info("All services initialized")
	return nil
}

// buildContentCaches creates the three typed caches behind the content
// service. When the content cache feature is switched off the caches
// fall back to short-lived in-process ones, so a Redis outage can be
// worked around without a deploy.
func (sc *ServiceCollection) buildContentCaches() (
	cache.Cache[*models.DailyTip],
	cache.Cache[*models.PaginatedResponse[models.DiscoverItem]],
	cache.Cache[*models.PaginatedResponse[models.ExpertTip]],
	error,
) {
	base := cache.Config{
		Provider:      sc.Config.Cache.Provider,
		TTL:           sc.Config.Cache.DefaultTTL,
		MaxKeys:       sc.Config.Cache.MaxKeys,
		RedisURL:      sc.Config.Cache.RedisURL,
		RedisDB:       sc.Config.Cache.RedisDB,
		RedisPassword: sc.Config.Cache.RedisPassword,
	}
	if !sc.Config.Features.EnableContentCache {
		base.Provider = "memory"
		base.TTL = time.Minute
	}

	tipConfig := base
	tipConfig.KeyPrefix = "content:tip"
	if sc.Config.Features.EnableContentCache {
		tipConfig.TTL = sc.Config.Cache.DailyTipTTL
	}
	tipCache, err := cache.New[*models.DailyTip](&tipConfig, sc.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("daily tip cache: %w", err)
	}

	discoverConfig := base
	discoverConfig.KeyPrefix = "content:discover"
	if sc.Config.Features.EnableContentCache {
		discoverConfig.TTL = sc.Config.Cache.DiscoverTTL
	}
	discoverCache, err := cache.New[*models.PaginatedResponse[models.DiscoverItem]](&discoverConfig, sc.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("discover cache: %w", err)
	}

	expertConfig := base
	expertConfig.KeyPrefix = "content:expert"
	if sc.Config.Features.EnableContentCache {
		expertConfig.TTL = sc.Config.Cache.ExpertTipTTL
	}
	expertCache, err := cache.New[*models.PaginatedResponse[models.ExpertTip]](&expertConfig, sc.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("expert tips cache: %w", err)
	}

	return tipCache, discoverCache, expertCache, nil
}

// ===============================
// SERVICE ACCESS METHODS
// ===============================

// GetBadgeService returns the badge service
func (sc *ServiceCollection) GetBadgeService() BadgeService {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.BadgeService
}

// GetNotificationService returns the notification service
func (sc *ServiceCollection) GetNotificationService() NotificationService {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.NotificationService
}

// GetContentService returns the content service
func (sc *ServiceCollection) GetContentService() ContentService {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ContentService
}

// GetAnalysisService returns the analysis service
func (sc *ServiceCollection) GetAnalysisService() AnalysisService {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.AnalysisService
}

// ===============================
// HEALTH AND MONITORING
// ===============================

// HealthCheck reports the health of the service layer's dependencies.
func (sc *ServiceCollection) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	health := &HealthStatus{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Services:  make(map[string]ServiceHealth),
		Uptime:    time.Since(sc.startTime),
	}

	health.Services["database"] = sc.checkDatabaseHealth(ctx)
	health.Services["event_bus"] = sc.checkEventBusHealth()

	// The database carries every request; the bus only carries async
	// side effects, so its failure degrades rather than downs the
	// service.
	if health.Services["event_bus"].Status == HealthStatusUnhealthy {
		health.Status = HealthStatusDegraded
	}
	if health.Services["database"].Status == HealthStatusUnhealthy {
		health.Status = HealthStatusUnhealthy
	}

	return health, nil
}

func (sc *ServiceCollection) checkDatabaseHealth(ctx context.Context) ServiceHealth {
	start := time.Now()
	status := ServiceHealth{Status: HealthStatusHealthy}

	if err := sc.DBManager.DB().PingContext(ctx); err != nil {
		status.Status = HealthStatusUnhealthy
		status.Error = err.Error()
	}

	status.ResponseTime = time.Since(start)
	return status
}

func (sc *ServiceCollection) checkEventBusHealth() ServiceHealth {
	start := time.Now()
	status := ServiceHealth{Status: HealthStatusHealthy}

	if err := sc.EventBus.Health(); err != nil {
		status.Status = HealthStatusUnhealthy
		status.Error = err.Error()
	}

	status.ResponseTime = time.Since(start)
	return status
}

// ===============================
// SERVICE LIFECYCLE MANAGEMENT
// ===============================

// Start starts background processing. Safe to call once.
func (sc *ServiceCollection) Start(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if !sc.initialized {
		return fmt.Errorf("service collection not initialized")
	}
	if sc.started {
		return nil
	}

	sc.Logger.Info("Starting service collection")

	if err := sc.EventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}

	sc.started = true
	sc.Logger.Info("Service collection started successfully")
	return nil
}

// Shutdown gracefully stops background processing and closes the
// database. The context bounds how long draining may take.
func (sc *ServiceCollection) Shutdown(ctx context.Context) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.Logger.Info("Shutting down service collection")

	var shutdownErrors []error

	if sc.started {
		if err := sc.EventBus.Stop(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("event bus stop: %w", err))
		}
		sc.started = false
	}

	if sc.DBManager != nil {
		if err := sc.DBManager.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		sc.Logger.Error("Errors occurred during shutdown",
			zap.Int("error_count", len(shutdownErrors)),
		)
		return fmt.Errorf("shutdown completed with %d errors", len(shutdownErrors))
	}

	sc.Logger.Info("Service collection shutdown completed successfully")
	return nil
}

// IsInitialized returns whether the service collection is fully initialized
func (sc *ServiceCollection) IsInitialized() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.initialized
}

// GetLogger returns the logger instance
func (sc *ServiceCollection) GetLogger() *zap.Logger {
	return sc.Logger
}

// GetConfig returns the configuration instance
func (sc *ServiceCollection) GetConfig() *config.Config {
	return sc.Config
}
