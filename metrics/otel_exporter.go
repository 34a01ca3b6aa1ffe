package metrics

import (
	"context"
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *prom.Registry
	collector     Collector

	// OTel meters and instruments
	meter                metric.Meter
	bufferEventsGauge    metric.Int64ObservableGauge
	bufferCapacityGauge  metric.Int64ObservableGauge
	pendingDispatchGauge metric.Int64ObservableGauge
	dispatchCounter      metric.Int64ObservableCounter
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	registry := prom.NewRegistry()

	// Create Prometheus exporter
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	// Create meter provider
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	// Create meter with service info
	meter := meterProvider.Meter(
		"whatsapp-bridge-api",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	// Register metrics instruments
	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.bufferEventsGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.buffer.events",
		metric.WithDescription("Number of inbound webhook events held in the ring buffer"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observeBufferEvents),
	)
	if err != nil {
		return fmt.Errorf("creating buffer events gauge: %w", err)
	}

	oe.bufferCapacityGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.buffer.capacity",
		metric.WithDescription("Maximum number of inbound webhook events held before eviction"),
		metric.WithUnit("{events}"),
		metric.WithInt64Callback(oe.observeBufferCapacity),
	)
	if err != nil {
		return fmt.Errorf("creating buffer capacity gauge: %w", err)
	}

	oe.pendingDispatchGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.dispatch.pending",
		metric.WithDescription("Number of async outgoing webhooks queued or in flight"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(oe.observePendingDispatch),
	)
	if err != nil {
		return fmt.Errorf("creating pending dispatch gauge: %w", err)
	}

	oe.dispatchCounter, err = oe.meter.Int64ObservableCounter(
		"webhook.dispatch.outcomes",
		metric.WithDescription("Number of outgoing webhooks by outcome"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(oe.observeDispatchOutcomes),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch outcomes counter: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeBufferEvents(ctx context.Context, observer metric.Int64Observer) error {
	buffer, err := oe.collector.GetBuffer(ctx)
	if err != nil {
		return err
	}
	observer.Observe(buffer.Events)
	return nil
}

func (oe *OTelExporter) observeBufferCapacity(ctx context.Context, observer metric.Int64Observer) error {
	buffer, err := oe.collector.GetBuffer(ctx)
	if err != nil {
		return err
	}
	observer.Observe(buffer.Capacity)
	return nil
}

func (oe *OTelExporter) observePendingDispatch(ctx context.Context, observer metric.Int64Observer) error {
	pending, err := oe.collector.GetPendingDispatch(ctx)
	if err != nil {
		return err
	}
	observer.Observe(pending)
	return nil
}

// observeDispatchOutcomes is a callback that reports outgoing webhook counts by outcome
func (oe *OTelExporter) observeDispatchOutcomes(ctx context.Context, observer metric.Int64Observer) error {
	outcomes, err := oe.collector.GetDispatchOutcomes(ctx)
	if err != nil {
		return err
	}

	for outcome, count := range outcomes {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("webhook.outcome", outcome),
		))
	}

	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
