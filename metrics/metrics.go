package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the webhook relay.
type Metrics struct {
	// Buffer is the occupancy of the inbound event ring buffer
	Buffer BufferMetrics `json:"buffer"`

	// PendingDispatch is the number of async webhooks queued or in flight
	PendingDispatch int64 `json:"pending_dispatch"`

	// DispatchOutcomes maps outcome name to the number of outgoing webhooks that ended that way
	DispatchOutcomes map[string]int64 `json:"dispatch_outcomes"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// BufferMetrics represents how full the ingest buffer is.
type BufferMetrics struct {
	// Events is the number of events currently held
	Events int64 `json:"events"`

	// Capacity is the maximum number of events held before the oldest is evicted
	Capacity int64 `json:"capacity"`
}

// Collector defines the interface for collecting metrics from the webhook relay.
type Collector interface {
	// Collect gathers current metrics from the system
	Collect(ctx context.Context) (Metrics, error)

	// GetBuffer returns the ingest buffer occupancy
	GetBuffer(ctx context.Context) (BufferMetrics, error)

	// GetPendingDispatch returns the number of async webhooks not yet sent
	GetPendingDispatch(ctx context.Context) (int64, error)

	// GetDispatchOutcomes returns the count of outgoing webhooks by outcome
	GetDispatchOutcomes(ctx context.Context) (map[string]int64, error)
}
