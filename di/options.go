package di

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/svcregistry/logger"
	"github.com/kbukum/svcregistry/observability"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. Defaults to logger.Get("di").
func WithLogger(l *logger.Logger) Option {
	return func(r *Registry) { r.log = l }
}

// WithTracer sets the tracer used for register and construct spans.
// Defaults to the global provider's registry tracer.
func WithTracer(t trace.Tracer) Option {
	return func(r *Registry) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithMetrics sets the instruments construction and lookups are reported to.
func WithMetrics(m *observability.RegistryMetrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithID overrides the generated registry ID.
func WithID(id string) Option {
	return func(r *Registry) {
		if id != "" {
			r.id = id
		}
	}
}

// WithClock overrides the time source used for construction timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}
