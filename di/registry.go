package di

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/svcregistry/errors"
	"github.com/kbukum/svcregistry/logger"
	"github.com/kbukum/svcregistry/observability"
)

// RegistrationInfo describes a cached instance for introspection.
type RegistrationInfo struct {
	Type          string        `json:"type" yaml:"type"`
	Constructor   string        `json:"constructor" yaml:"constructor"`
	Params        []string      `json:"params" yaml:"params"`
	Injected      bool          `json:"injected" yaml:"injected"`
	Order         int           `json:"order" yaml:"order"`
	ConstructedAt time.Time     `json:"constructed_at" yaml:"constructed_at"`
	Duration      time.Duration `json:"duration_ns" yaml:"duration"`
}

type entry struct {
	value         reflect.Value
	constructor   Constructor
	order         int
	constructedAt time.Time
	duration      time.Duration
}

// Registry holds at most one instance per type and builds missing instances
// by resolving constructor parameters from itself.
//
// Entries are only ever added. Register holds the write lock for the whole
// resolution pass, so constructors must not call back into the registry.
type Registry struct {
	id           string
	introspector Introspector
	log          *logger.Logger
	tracer       trace.Tracer
	metrics      *observability.RegistryMetrics
	now          func() time.Time

	mu        sync.RWMutex
	instances map[reflect.Type]*entry
	order     []reflect.Type
}

// New creates an empty registry that discovers constructors through in.
// A nil introspector knows no constructors.
func New(in Introspector, opts ...Option) *Registry {
	r := &Registry{
		id:           uuid.NewString(),
		introspector: in,
		tracer:       observability.Tracer(observability.InstrumentationName),
		now:          time.Now,
		instances:    make(map[reflect.Type]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get("di")
	}
	r.log = r.log.WithFields(logger.Fields(logger.FieldRegistryID, r.id))
	if r.metrics == nil {
		metrics, err := observability.NewRegistryMetrics(observability.Meter(observability.InstrumentationName))
		if err != nil {
			r.log.Warn("registry metrics disabled", logger.Fields(logger.FieldError, err.Error()))
		}
		r.metrics = metrics
	}
	return r
}

// ID returns the identifier carried in this registry's logs, spans and metrics.
func (r *Registry) ID() string { return r.id }

// Register makes sure an instance of t is cached. If one already is, Register
// does nothing. Otherwise it constructs t, and first every missing type its
// constructor needs. On failure, instances built before the failing step stay
// cached.
func (r *Registry) Register(ctx context.Context, t reflect.Type) error {
	if t == nil {
		return errors.InvalidInput("type", "type descriptor is nil")
	}

	ctx, span := r.tracer.Start(ctx, observability.SpanRegister, trace.WithAttributes(
		attribute.String(observability.AttrType, t.String()),
		attribute.String(observability.AttrRegistryID, r.id),
	))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.instances[t]; ok {
		span.SetAttributes(attribute.Bool(observability.AttrCached, true))
		r.log.WithContext(ctx).Debug("service already registered", logger.Fields(logger.FieldType, t.String()))
		return nil
	}

	if _, err := r.construct(ctx, t, []reflect.Type{t}); err != nil {
		observability.SetSpanError(span, err)
		r.log.WithContext(ctx).Error("service registration failed", logger.Fields(
			logger.FieldType, t.String(),
			logger.FieldError, err.Error(),
		))
		return err
	}
	return nil
}

// resolve returns the cached instance of t or constructs it. path holds the
// types currently being constructed, outermost first.
func (r *Registry) resolve(ctx context.Context, t reflect.Type, path []reflect.Type) (reflect.Value, error) {
	if e, ok := r.instances[t]; ok {
		return e.value, nil
	}
	for i, p := range path {
		if p == t {
			cycle := make([]reflect.Type, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			cycle = append(cycle, t)
			return reflect.Value{}, cyclicDependency(cycle)
		}
	}
	return r.construct(ctx, t, append(path, t))
}

// construct builds path[len(path)-1] and stores it. The caller holds r.mu.
func (r *Registry) construct(ctx context.Context, t reflect.Type, path []reflect.Type) (reflect.Value, error) {
	name := t.String()
	depth := len(path) - 1

	ctx, span := r.tracer.Start(ctx, observability.SpanConstruct, trace.WithAttributes(
		attribute.String(observability.AttrType, name),
		attribute.Int(observability.AttrDepth, depth),
	))
	defer span.End()

	ctor, err := SelectConstructor(t, r.constructors(t))
	if err != nil {
		r.fail(ctx, span, name, err)
		return reflect.Value{}, err
	}
	span.SetAttributes(attribute.String(observability.AttrConstructor, ctor.String()))

	params := ctor.Params()
	args := make([]reflect.Value, len(params))
	for i, p := range params {
		r.log.WithContext(ctx).Debug("resolving dependency", logger.Fields(
			logger.FieldType, name,
			"dependency", typeName(p),
			logger.FieldDepth, depth,
		))
		v, err := r.resolve(ctx, p, path)
		if err != nil {
			// The dependency already recorded the failure against its own type.
			observability.SetSpanError(span, err)
			return reflect.Value{}, err
		}
		args[i] = v
	}

	start := r.now()
	out, err := ctor.Invoke(args)
	elapsed := r.now().Sub(start)
	if err == nil && (!out.IsValid() || out.Type() != t) {
		got := "<invalid>"
		if out.IsValid() {
			got = out.Type().String()
		}
		err = errors.TypeMismatch(name, got)
	}
	if err != nil {
		appErr := errors.ConstructionFailed(name, ctor.String(), err)
		r.fail(ctx, span, name, appErr)
		return reflect.Value{}, appErr
	}

	r.instances[t] = &entry{
		value:         out,
		constructor:   ctor,
		order:         len(r.order),
		constructedAt: start,
		duration:      elapsed,
	}
	r.order = append(r.order, t)

	r.metrics.RecordConstruction(ctx, r.id, name, "ok", elapsed)
	r.log.WithContext(ctx).Info("service constructed", logger.Fields(
		logger.FieldType, name,
		logger.FieldConstructor, ctor.String(),
		logger.FieldDepth, depth,
		logger.FieldDuration, elapsed.Milliseconds(),
	))
	return out, nil
}

func (r *Registry) fail(ctx context.Context, span trace.Span, name string, err error) {
	status := "error"
	if appErr, ok := errors.AsAppError(err); ok {
		status = strings.ToLower(string(appErr.Code))
	}
	r.metrics.RecordConstruction(ctx, r.id, name, status, 0)
	observability.SetSpanError(span, err)
}

func (r *Registry) constructors(t reflect.Type) []Constructor {
	if r.introspector == nil {
		return nil
	}
	return r.introspector.Constructors(t)
}

// Get returns the cached instance of t. It never constructs; a type that was
// not registered, directly or as a dependency, is a NOT_REGISTERED error.
func (r *Registry) Get(t reflect.Type) (any, error) {
	r.mu.RLock()
	e, ok := r.instances[t]
	r.mu.RUnlock()

	r.metrics.RecordLookup(context.Background(), r.id, typeName(t), ok)
	if !ok {
		return nil, errors.NotRegistered(typeName(t)).WithDetail(logger.FieldRegistryID, r.id)
	}
	return e.value.Interface(), nil
}

// Has reports whether an instance of t is cached.
func (r *Registry) Has(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.instances[t]
	return ok
}

// Len returns the number of cached instances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.instances)
}

// Registrations returns the cached instances in construction order, so every
// entry appears after the dependencies it was built from.
func (r *Registry) Registrations() []RegistrationInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]RegistrationInfo, 0, len(r.order))
	for _, t := range r.order {
		result = append(result, r.info(t, r.instances[t]))
	}
	return result
}

// Lookup returns the registration for the type whose String() is name.
func (r *Registry) Lookup(name string) (RegistrationInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.order {
		if t.String() == name {
			return r.info(t, r.instances[t]), true
		}
	}
	return RegistrationInfo{}, false
}

func (r *Registry) info(t reflect.Type, e *entry) RegistrationInfo {
	return RegistrationInfo{
		Type:          t.String(),
		Constructor:   e.constructor.String(),
		Params:        typeNames(e.constructor.Params()),
		Injected:      e.constructor.Injected(),
		Order:         e.order,
		ConstructedAt: e.constructedAt,
		Duration:      e.duration,
	}
}
