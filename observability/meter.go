package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/svcregistry/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricConstructions        = "di.constructions"
	MetricConstructionDuration = "di.construction.duration"
	MetricInstances            = "di.instances"
	MetricLookups              = "di.lookups"
)

// RegistryMetrics holds the instruments a service registry reports to.
// A nil *RegistryMetrics records nothing.
type RegistryMetrics struct {
	constructions metric.Int64Counter
	duration      metric.Float64Histogram
	instances     metric.Int64UpDownCounter
	lookups       metric.Int64Counter
}

// NewRegistryMetrics creates registry instruments on the given meter.
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	constructions, err := meter.Int64Counter(MetricConstructions,
		metric.WithDescription("Constructor invocations by type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricConstructions, err)
	}

	duration, err := meter.Float64Histogram(MetricConstructionDuration,
		metric.WithDescription("Time spent inside constructors in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricConstructionDuration, err)
	}

	instances, err := meter.Int64UpDownCounter(MetricInstances,
		metric.WithDescription("Singleton instances held by registries"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricInstances, err)
	}

	lookups, err := meter.Int64Counter(MetricLookups,
		metric.WithDescription("Instance lookups by type and result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricLookups, err)
	}

	return &RegistryMetrics{
		constructions: constructions,
		duration:      duration,
		instances:     instances,
		lookups:       lookups,
	}, nil
}

// RecordConstruction records one construction attempt. status is "ok" or the
// lower-cased error code.
func (m *RegistryMetrics) RecordConstruction(ctx context.Context, registryID, typeName, status string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String(AttrRegistryID, registryID),
		attribute.String(AttrType, typeName),
		attribute.String(AttrStatus, status),
	)
	m.constructions.Add(ctx, 1, attrs)
	if status == "ok" {
		m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(
			attribute.String(AttrRegistryID, registryID),
			attribute.String(AttrType, typeName),
		))
		m.instances.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrRegistryID, registryID)))
	}
}

// RecordLookup records a Get call and whether it found an instance.
func (m *RegistryMetrics) RecordLookup(ctx context.Context, registryID, typeName string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRegistryID, registryID),
		attribute.String(AttrType, typeName),
		attribute.String("result", result),
	))
}
