package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// SetupMeterProvider installs a global meter provider backed by the
// Prometheus exporter. Scrape through promhttp.
func SetupMeterProvider() error {
	exporter, err := otelprom.New()
	if err != nil {
		return fmt.Errorf("create prometheus exporter: %w", err)
	}

	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)))
	return nil
}

// Metrics records dashboard activity in Prometheus format via OTEL.
type Metrics struct {
	datasetLoads   metric.Int64Counter
	loadDuration   metric.Float64Histogram
	exportsTotal   metric.Int64Counter
	sessionsActive metric.Int64UpDownCounter
}

// NewMetrics creates the dashboard metrics set.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("tagboard")
	m := &Metrics{}
	var err error

	m.datasetLoads, err = meter.Int64Counter(
		"tagboard_dataset_loads_total",
		metric.WithDescription("Dataset load operations"),
	)
	if err != nil {
		return nil, fmt.Errorf("create dataset_loads counter: %w", err)
	}

	m.loadDuration, err = meter.Float64Histogram(
		"tagboard_dataset_load_duration_seconds",
		metric.WithDescription("Time taken to load and parse the dataset"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create load_duration histogram: %w", err)
	}

	m.exportsTotal, err = meter.Int64Counter(
		"tagboard_exports_total",
		metric.WithDescription("CSV exports served"),
	)
	if err != nil {
		return nil, fmt.Errorf("create exports counter: %w", err)
	}

	m.sessionsActive, err = meter.Int64UpDownCounter(
		"tagboard_sessions_active",
		metric.WithDescription("Dashboard sessions currently open"),
	)
	if err != nil {
		return nil, fmt.Errorf("create sessions gauge: %w", err)
	}

	return m, nil
}

// RecordLoad records one dataset load.
func (m *Metrics) RecordLoad(ctx context.Context, records int, seconds float64) {
	m.datasetLoads.Add(ctx, 1)
	m.loadDuration.Record(ctx, seconds, metric.WithAttributes(
		attribute.Int("records", records)))
}

// RecordExport records one served export of the given kind.
func (m *Metrics) RecordExport(ctx context.Context, kind string) {
	m.exportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind)))
}

// SessionOpened bumps the active session gauge.
func (m *Metrics) SessionOpened(ctx context.Context) {
	m.sessionsActive.Add(ctx, 1)
}

// SessionClosed drops the active session gauge.
func (m *Metrics) SessionClosed(ctx context.Context) {
	m.sessionsActive.Add(ctx, -1)
}
