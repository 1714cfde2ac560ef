package database

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Metrics collects and tracks database performance metrics
type Metrics struct {
	logger *zap.Logger

	// Query metrics
	queryCount    int64
	queryDuration int64 // nanoseconds
	errorCount    int64
	maxDuration   int64 // nanoseconds

	// Query type counters
	execCount     int64
	queryRowCount int64
	selectCount   int64
	txCount       int64
}

// MetricsSnapshot is a point-in-time copy of the query counters.
type MetricsSnapshot struct {
	TotalQueries  int64         `json:"total_queries"`
	FailedQueries int64         `json:"failed_queries"`
	AvgDuration   time.Duration `json:"avg_duration"`
	MaxDuration   time.Duration `json:"max_duration"`
	ExecQueries   int64         `json:"exec_queries"`
	RowQueries    int64         `json:"row_queries"`
	SelectQueries int64         `json:"select_queries"`
	Transactions  int64         `json:"transactions"`
}

// NewMetrics creates a new metrics collector
func NewMetrics(logger *zap.Logger) *Metrics {
	return &Metrics{logger: logger}
}

// RecordQuery records one executed statement.
func (m *Metrics) RecordQuery(kind string, duration time.Duration, err error) {
	atomic.AddInt64(&m.queryCount, 1)
	atomic.AddInt64(&m.queryDuration, int64(duration))

	// Track the slowest statement seen so far.
	for {
		current := atomic.LoadInt64(&m.maxDuration)
		if int64(duration) <= current {
			break
		}
		if atomic.CompareAndSwapInt64(&m.maxDuration, current, int64(duration)) {
			break
		}
	}

	switch kind {
	case "exec":
		atomic.AddInt64(&m.execCount, 1)
	case "query_row":
		atomic.AddInt64(&m.queryRowCount, 1)
	case "query":
		atomic.AddInt64(&m.selectCount, 1)
	case "begin_tx":
		atomic.AddInt64(&m.txCount, 1)
	}

	if err != nil {
		atomic.AddInt64(&m.errorCount, 1)
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	total := atomic.LoadInt64(&m.queryCount)

	var avg time.Duration
	if total > 0 {
		avg = time.Duration(atomic.LoadInt64(&m.queryDuration) / total)
	}

	return &MetricsSnapshot{
		TotalQueries:  total,
		FailedQueries: atomic.LoadInt64(&m.errorCount),
		AvgDuration:   avg,
		MaxDuration:   time.Duration(atomic.LoadInt64(&m.maxDuration)),
		ExecQueries:   atomic.LoadInt64(&m.execCount),
		RowQueries:    atomic.LoadInt64(&m.queryRowCount),
		SelectQueries: atomic.LoadInt64(&m.selectCount),
		Transactions:  atomic.LoadInt64(&m.txCount),
	}
}
