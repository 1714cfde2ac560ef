// File: internal/monitoring/dashboard.go
package monitoring

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"zuna/internal/database"
	"zuna/internal/events"
)

// ===============================
// RUNTIME STATS DASHBOARD
// ===============================

// Dashboard aggregates runtime statistics from the process's
// long-lived components for the internal stats endpoint.
type Dashboard struct {
	dbManager   *database.Manager
	eventBus    events.EventBus
	logger      *zap.Logger
	startTime   time.Time
	version     string
	environment string
}

// NewDashboard creates a new runtime stats dashboard
func NewDashboard(
	dbManager *database.Manager,
	eventBus events.EventBus,
	logger *zap.Logger,
	version, environment string,
) *Dashboard {
	return &Dashboard{
		dbManager:   dbManager,
		eventBus:    eventBus,
		logger:      logger,
		startTime:   time.Now(),
		version:     version,
		environment: environment,
	}
}

// ===============================
// DATA STRUCTURES
// ===============================

// RuntimeSnapshot is one point-in-time view of the whole process
type RuntimeSnapshot struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`

	Database DatabaseStats `json:"database"`
	EventBus EventBusStats `json:"event_bus"`
	Process  ProcessStats  `json:"process"`
}

// DatabaseStats summarizes pool usage and query metrics
type DatabaseStats struct {
	Healthy       bool   `json:"healthy"`
	ResponseTime  string `json:"response_time"`
	OpenConns     int    `json:"open_connections"`
	InUseConns    int    `json:"in_use_connections"`
	IdleConns     int    `json:"idle_connections"`
	WaitCount     int64  `json:"wait_count"`
	TotalQueries  int64  `json:"total_queries"`
	FailedQueries int64  `json:"failed_queries"`
	AvgQueryTime  string `json:"avg_query_time"`
	MaxQueryTime  string `json:"max_query_time"`
	Transactions  int64  `json:"transactions"`
}

// EventBusStats summarizes async event throughput
type EventBusStats struct {
	Healthy         bool   `json:"healthy"`
	EventsPublished int64  `json:"events_published"`
	EventsProcessed int64  `json:"events_processed"`
	EventsFailed    int64  `json:"events_failed"`
	QueueDepth      int    `json:"queue_depth"`
	Handlers        int    `json:"handlers"`
	AvgProcessTime  string `json:"avg_process_time"`
}

// ProcessStats summarizes Go runtime usage
type ProcessStats struct {
	Goroutines  int    `json:"goroutines"`
	HeapAlloc   uint64 `json:"heap_alloc_bytes"`
	HeapObjects uint64 `json:"heap_objects"`
	NumGC       uint32 `json:"num_gc"`
}

// ===============================
// SNAPSHOT COLLECTION
// ===============================

// Snapshot gathers statistics from every component. Collection never
// fails; a broken component shows up as unhealthy in the snapshot.
func (d *Dashboard) Snapshot(ctx context.Context) *RuntimeSnapshot {
	snapshot := &RuntimeSnapshot{
		Status:      "healthy",
		Timestamp:   time.Now(),
		Uptime:      time.Since(d.startTime).Round(time.Second).String(),
		Version:     d.version,
		Environment: d.environment,
	}

	snapshot.Database = d.collectDatabaseStats(ctx)
	snapshot.EventBus = d.collectEventBusStats()
	snapshot.Process = collectProcessStats()

	if !snapshot.Database.Healthy {
		snapshot.Status = "unhealthy"
	} else if !snapshot.EventBus.Healthy {
		snapshot.Status = "degraded"
	}

	return snapshot
}

func (d *Dashboard) collectDatabaseStats(ctx context.Context) DatabaseStats {
	stats := DatabaseStats{}
	if d.dbManager == nil {
		return stats
	}

	health := d.dbManager.Health(ctx)
	stats.Healthy = health.Healthy()
	stats.ResponseTime = health.ResponseTime.String()

	pool := d.dbManager.Stats()
	stats.OpenConns = pool.OpenConnections
	stats.InUseConns = pool.InUse
	stats.IdleConns = pool.Idle
	stats.WaitCount = pool.WaitCount

	if metrics := d.dbManager.Metrics(); metrics != nil {
		stats.TotalQueries = metrics.TotalQueries
		stats.FailedQueries = metrics.FailedQueries
		stats.AvgQueryTime = metrics.AvgDuration.String()
		stats.MaxQueryTime = metrics.MaxDuration.String()
		stats.Transactions = metrics.Transactions
	}

	return stats
}

func (d *Dashboard) collectEventBusStats() EventBusStats {
	stats := EventBusStats{}
	if d.eventBus == nil {
		return stats
	}

	stats.Healthy = d.eventBus.Health() == nil

	if busStats := d.eventBus.Stats(); busStats != nil {
		stats.EventsPublished = busStats.EventsPublished
		stats.EventsProcessed = busStats.EventsProcessed
		stats.EventsFailed = busStats.EventsFailed
		stats.QueueDepth = busStats.QueueDepth
		stats.Handlers = busStats.HandlersCount
		stats.AvgProcessTime = busStats.AverageProcessTime.String()
	}

	return stats
}

func collectProcessStats() ProcessStats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return ProcessStats{
		Goroutines:  runtime.NumGoroutine(),
		HeapAlloc:   mem.HeapAlloc,
		HeapObjects: mem.HeapObjects,
		NumGC:       mem.NumGC,
	}
}
