package bootstrap

import (
	"io"
	"time"

	"github.com/kbukum/svcregistry/di"
	"github.com/kbukum/svcregistry/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

// appOptions collects all option values before applying to App.
type appOptions struct {
	logger          *logger.Logger
	registryOpts    []di.Option
	gracefulTimeout *time.Duration
	summaryOut      io.Writer
}

// resolveOptions applies all options and returns the collected values.
func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is auto-initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithRegistryOptions passes options through to di.New.
func WithRegistryOptions(opts ...di.Option) Option {
	return func(o *appOptions) {
		o.registryOpts = append(o.registryOpts, opts...)
	}
}

// WithSummaryOutput sets where the startup summary is printed. Defaults to stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(o *appOptions) {
		o.summaryOut = w
	}
}
