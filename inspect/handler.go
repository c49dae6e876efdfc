package inspect

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/svcregistry/di"
	"github.com/kbukum/svcregistry/errors"
	"github.com/kbukum/svcregistry/logger"
	"github.com/kbukum/svcregistry/observability"
	"github.com/kbukum/svcregistry/version"
)

type options struct {
	log     *logger.Logger
	tracer  trace.Tracer
	version version.Info
	service string
}

// Option configures the inspect handler.
type Option func(*options)

// WithLogger sets the request logger. Defaults to logger.Get("inspect").
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer sets the tracer for request spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithVersion overrides the build information served on /version.
func WithVersion(v version.Info) Option {
	return func(o *options) { o.version = v }
}

// WithService sets the service name reported by /health.
func WithService(name string) Option {
	return func(o *options) { o.service = name }
}

type handler struct {
	reg  *di.Registry
	opts options
}

// NewHandler returns the inspect routes for reg.
func NewHandler(reg *di.Registry, opts ...Option) http.Handler {
	o := options{
		tracer:  observability.Tracer(observability.InstrumentationName),
		version: version.Get(),
		service: "registry",
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Get("inspect")
	}

	h := &handler{reg: reg, opts: o}

	engine := gin.New()
	engine.Use(recovery(o.log), requestID(), tracing(o.tracer), requestLogger(o.log))
	engine.NoRoute(func(c *gin.Context) {
		RespondWithError(c, errors.NotFound("route", c.Request.URL.Path))
	})

	engine.GET("/health", h.health)
	engine.GET("/registrations", h.list)
	engine.GET("/registrations/lookup", h.lookup)
	engine.GET("/version", h.versionInfo)
	return engine
}

func (h *handler) health(c *gin.Context) {
	instances := h.reg.Len()

	sh := observability.NewServiceHealth(h.opts.service, h.opts.version.Short())
	sh.AddComponent(observability.Health{
		Name:   "registry",
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			logger.FieldRegistryID: h.reg.ID(),
		},
	})

	status := "healthy"
	httpStatus := http.StatusOK
	switch sh.Status {
	case observability.HealthStatusDown:
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	case observability.HealthStatusDegraded:
		status = "degraded"
	}

	c.JSON(httpStatus, gin.H{
		"status":      status,
		"service":     sh.Service,
		"version":     sh.Version,
		"registry_id": h.reg.ID(),
		"instances":   instances,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"components":  sh.Components,
	})
}

func (h *handler) list(c *gin.Context) {
	regs := h.reg.Registrations()
	RespondOKWithMeta(c, regs, &Meta{Total: len(regs)})
}

func (h *handler) lookup(c *gin.Context) {
	name := c.Query("type")
	if name == "" {
		RespondWithError(c, errors.InvalidInput("type", "query parameter type is required"))
		return
	}
	info, ok := h.reg.Lookup(name)
	if !ok {
		RespondWithError(c, errors.NotRegistered(name).WithDetail(logger.FieldRegistryID, h.reg.ID()))
		return
	}
	RespondOK(c, info)
}

func (h *handler) versionInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.opts.version)
}
