// file: internal/repositories/collection.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"zuna/internal/database"
	"zuna/internal/models"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Collection holds all repository instances for dependency injection
type Collection struct {
	Badge         BadgeRepository
	Activity      ActivityRepository
	ColoringStats ColoringStatsRepository
	Analysis      AnalysisRepository
	Profile       ProfileRepository
	Notification  NotificationRepository
	Content       ContentRepository

	// Database and logger for custom operations
	db     *database.Manager
	logger *zap.Logger
}

// RepositoryConfig holds configuration for repository initialization
type RepositoryConfig struct {
	EnableQueryLogging bool
	SlowQueryThreshold time.Duration
}

// NewCollection creates a new repository collection with all dependencies
func NewCollection(db *database.Manager, logger *zap.Logger, config *RepositoryConfig) (*Collection, error) {
	if db == nil {
		return nil, fmt.Errorf("database manager is required")
	}

	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	if config == nil {
		config = &RepositoryConfig{
			EnableQueryLogging: true,
			SlowQueryThreshold: 100 * time.Millisecond,
		}
	}

	collection := &Collection{
		db:     db,
		logger: logger,
	}

	collection.Badge = NewBadgeRepository(db, logger)
	collection.Activity = NewActivityRepository(db, logger)
	collection.ColoringStats = NewColoringStatsRepository(db, logger)
	collection.Analysis = NewAnalysisRepository(db, logger)
	collection.Profile = NewProfileRepository(db, logger)
	collection.Notification = NewNotificationRepository(db, logger)
	collection.Content = NewContentRepository(db, logger)

	logger.Info("Repository collection initialized successfully",
		zap.Bool("query_logging", config.EnableQueryLogging),
		zap.Duration("slow_query_threshold", config.SlowQueryThreshold),
	)

	return collection, nil
}

// ===============================
// TRANSACTION MANAGEMENT
// ===============================

// WithTransaction executes a function within a database transaction
func (c *Collection) WithTransaction(ctx context.Context, fn func(*Collection) error) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(c); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			c.logger.Error("Failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("cause", err),
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ===============================
// HEALTH AND MONITORING
// ===============================

// HealthCheck performs health checks on the data layer
func (c *Collection) HealthCheck(ctx context.Context) map[string]interface{} {
	health := make(map[string]interface{})

	// Check database connectivity
	dbHealth := c.db.Health(ctx)
	health["database"] = map[string]interface{}{
		"status":        dbHealth.Status,
		"response_time": dbHealth.ResponseTime,
		"error":         dbHealth.Error,
	}

	// Check individual repository functionality
	health["repositories"] = c.checkRepositoriesHealth(ctx)

	// Get performance metrics
	metrics := c.db.Metrics()
	health["performance"] = map[string]interface{}{
		"query_count":        metrics.TotalQueries,
		"error_count":        metrics.FailedQueries,
		"avg_query_duration": metrics.AvgDuration,
		"max_query_duration": metrics.MaxDuration,
	}

	return health
}

// checkRepositoriesHealth runs a cheap read against each table. The
// nil UUID belongs to no real user, so every probe is an empty read.
func (c *Collection) checkRepositoriesHealth(ctx context.Context) map[string]interface{} {
	probeID := uuid.Nil

	checks := make(map[string]interface{})

	checks["badge"] = c.testRepositoryHealth(ctx, "user_badges", func() error {
		_, err := c.Badge.ListByUser(ctx, probeID)
		return err
	})

	checks["activity"] = c.testRepositoryHealth(ctx, "user_activity", func() error {
		_, err := c.Activity.Totals(ctx, probeID)
		return err
	})

	checks["coloring_stats"] = c.testRepositoryHealth(ctx, "user_coloring_stats", func() error {
		_, err := c.ColoringStats.GetByUser(ctx, probeID)
		return err
	})

	checks["analysis"] = c.testRepositoryHealth(ctx, "analyses", func() error {
		_, err := c.Analysis.CountDistinctTaskTypes(ctx, probeID)
		return err
	})

	checks["profile"] = c.testRepositoryHealth(ctx, "profiles", func() error {
		_, err := c.Profile.CountChildProfiles(ctx, probeID)
		return err
	})

	checks["notification"] = c.testRepositoryHealth(ctx, "notifications", func() error {
		_, err := c.Notification.ListByUser(ctx, probeID, models.PaginationParams{Limit: 1})
		return err
	})

	checks["content"] = c.testRepositoryHealth(ctx, "daily_tips", func() error {
		_, err := c.Content.GetDailyTip(ctx, time.Now().UTC().Truncate(24*time.Hour))
		return err
	})

	return checks
}

// testRepositoryHealth runs a test operation for a repository
func (c *Collection) testRepositoryHealth(ctx context.Context, name string, testFn func() error) map[string]interface{} {
	start := time.Now()
	err := testFn()
	duration := time.Since(start)

	result := map[string]interface{}{
		"duration": duration,
		"healthy":  err == nil,
	}

	if err != nil {
		result["error"] = err.Error()
		c.logger.Warn("Repository health check failed",
			zap.String("repository", name),
			zap.Error(err),
			zap.Duration("duration", duration),
		)
	}

	return result
}

// ===============================
// UTILITIES
// ===============================

// GetDB returns the underlying database manager for advanced operations
func (c *Collection) GetDB() *database.Manager {
	return c.db
}

// GetLogger returns the logger instance
func (c *Collection) GetLogger() *zap.Logger {
	return c.logger
}

// Close closes all repository connections and cleans up resources
func (c *Collection) Close() error {
	c.logger.Info("Closing repository collection")

	if c.db != nil {
		return c.db.Close()
	}

	return nil
}

// ===============================
// FACTORY METHODS
// ===============================

// NewTestCollection creates a collection for testing
func NewTestCollection(db *database.Manager, logger *zap.Logger) *Collection {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Collection{
		Badge:         NewBadgeRepository(db, logger),
		Activity:      NewActivityRepository(db, logger),
		ColoringStats: NewColoringStatsRepository(db, logger),
		Analysis:      NewAnalysisRepository(db, logger),
		Profile:       NewProfileRepository(db, logger),
		Notification:  NewNotificationRepository(db, logger),
		Content:       NewContentRepository(db, logger),
		db:            db,
		logger:        logger,
	}
}
