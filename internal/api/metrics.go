package api

import (
	"sync/atomic"
	"time"
)

// Metrics tracks request statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsTotal  atomic.Int64
	RequestsFailed atomic.Int64
	InFlight       atomic.Int32
	StartTime      time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// observe records a finished request. Only server errors count as failed;
// 4xx responses are the client's problem.
func (m *Metrics) observe(status int) {
	m.RequestsTotal.Add(1)
	if status >= 500 {
		m.RequestsFailed.Add(1)
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	RequestsTotal  int64     `json:"requestsTotal"`
	RequestsFailed int64     `json:"requestsFailed"`
	InFlight       int32     `json:"inFlight"`
	StartTime      time.Time `json:"startTime"`
	UptimeSeconds  int64     `json:"uptimeSeconds"`
}

// Snapshot returns a snapshot of current metrics
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		RequestsTotal:  m.RequestsTotal.Load(),
		RequestsFailed: m.RequestsFailed.Load(),
		InFlight:       m.InFlight.Load(),
		StartTime:      m.StartTime.UTC(),
		UptimeSeconds:  int64(time.Since(m.StartTime).Seconds()),
	}
}
