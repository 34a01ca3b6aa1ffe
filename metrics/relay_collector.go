package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/whatsapp-bridge-api/webhook"
)

// RelayCollector implements the Collector interface over the webhook service
type RelayCollector struct {
	service webhook.UseCase
}

// NewRelayCollector creates a new metrics collector for the webhook relay
func NewRelayCollector(service webhook.UseCase) *RelayCollector {
	return &RelayCollector{
		service: service,
	}
}

// Collect gathers all metrics in a single snapshot
func (c *RelayCollector) Collect(ctx context.Context) (Metrics, error) {
	stats, err := c.service.Stats(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting relay stats: %w", err)
	}

	return Metrics{
		Buffer:           bufferMetrics(stats),
		PendingDispatch:  stats.PendingDispatch,
		DispatchOutcomes: outcomeCounts(stats),
		Timestamp:        time.Now(),
	}, nil
}

// GetBuffer returns the ingest buffer occupancy
func (c *RelayCollector) GetBuffer(ctx context.Context) (BufferMetrics, error) {
	stats, err := c.service.Stats(ctx)
	if err != nil {
		return BufferMetrics{}, fmt.Errorf("getting relay stats: %w", err)
	}
	return bufferMetrics(stats), nil
}

// GetPendingDispatch returns the number of async webhooks not yet sent
func (c *RelayCollector) GetPendingDispatch(ctx context.Context) (int64, error) {
	stats, err := c.service.Stats(ctx)
	if err != nil {
		return 0, fmt.Errorf("getting relay stats: %w", err)
	}
	return stats.PendingDispatch, nil
}

// GetDispatchOutcomes returns counts of outgoing webhooks grouped by outcome.
// Every known outcome is present, zero or not.
func (c *RelayCollector) GetDispatchOutcomes(ctx context.Context) (map[string]int64, error) {
	stats, err := c.service.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting relay stats: %w", err)
	}
	return outcomeCounts(stats), nil
}

func bufferMetrics(stats webhook.Stats) BufferMetrics {
	return BufferMetrics{
		Events:   int64(stats.BufferedEvents),
		Capacity: int64(stats.BufferCapacity),
	}
}

func outcomeCounts(stats webhook.Stats) map[string]int64 {
	counts := make(map[string]int64, len(webhook.Outcomes))
	for _, o := range webhook.Outcomes {
		counts[o.String()] = stats.DispatchOutcomes[o]
	}
	return counts
}
