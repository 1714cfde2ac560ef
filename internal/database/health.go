package database

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// HealthStatus represents the current health status of the database
type HealthStatus struct {
	Status       string        `json:"status"`
	Timestamp    time.Time     `json:"timestamp"`
	ResponseTime time.Duration `json:"response_time"`
	OpenConns    int           `json:"open_connections"`
	InUseConns   int           `json:"in_use_connections"`
	IdleConns    int           `json:"idle_connections"`
	Error        string        `json:"error,omitempty"`
}

// Healthy reports whether the last check succeeded.
func (s *HealthStatus) Healthy() bool {
	return s != nil && s.Status == "healthy"
}

// HealthChecker pings the database on demand and on a background
// interval, keeping the most recent status for cheap reads.
type HealthChecker struct {
	manager *Manager
	logger  *zap.Logger

	mu     sync.RWMutex
	status *HealthStatus

	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewHealthChecker creates a health checker. A non-positive interval
// disables the background loop.
func NewHealthChecker(manager *Manager, interval time.Duration, logger *zap.Logger) *HealthChecker {
	checker := &HealthChecker{
		manager:  manager,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}

	if interval > 0 {
		go checker.run()
	}

	return checker
}

// Check pings the database and returns a fresh status.
func (h *HealthChecker) Check(ctx context.Context) *HealthStatus {
	start := time.Now()

	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: start,
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := h.manager.DB().PingContext(pingCtx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}

	status.ResponseTime = time.Since(start)

	stats := h.manager.Stats()
	status.OpenConns = stats.OpenConnections
	status.InUseConns = stats.InUse
	status.IdleConns = stats.Idle

	h.mu.Lock()
	h.status = status
	h.mu.Unlock()

	if status.Status != "healthy" {
		h.logger.Warn("database health check failed",
			zap.String("error", status.Error),
			zap.Duration("response_time", status.ResponseTime),
		)
	}

	return status
}

// Last returns the most recent status without pinging.
func (h *HealthChecker) Last() *HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

// Stop shuts down the background loop.
func (h *HealthChecker) Stop() {
	h.stopOnce.Do(func() {
		close(h.stopCh)
	})
}

func (h *HealthChecker) run() {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.Check(context.Background())
		case <-h.stopCh:
			return
		}
	}
}
