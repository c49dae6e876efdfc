package di

import (
	"context"
	"fmt"
	"reflect"

	"github.com/kbukum/svcregistry/errors"
)

// TypeOf returns the type descriptor for T. Interface types are kept as the
// interface, not the dynamic type of some value.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Register registers T with type safety.
//
// Example:
//
//	if err := di.Register[*demo.UserService](ctx, reg); err != nil {
//	    return fmt.Errorf("wiring user service: %w", err)
//	}
func Register[T any](ctx context.Context, r *Registry) error {
	return r.Register(ctx, TypeOf[T]())
}

// Get returns the cached T, or NOT_REGISTERED if T was never registered.
// The returned value is exactly the instance stored under T.
func Get[T any](r *Registry) (T, error) {
	var zero T
	instance, err := r.Get(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	result, ok := instance.(T)
	if !ok {
		return zero, errors.TypeMismatch(TypeOf[T]().String(), fmt.Sprintf("%T", instance))
	}
	return result, nil
}

// MustGet returns the cached T and panics if it is missing.
// Use it where a missing registration is a wiring bug.
func MustGet[T any](r *Registry) T {
	result, err := Get[T](r)
	if err != nil {
		panic(fmt.Sprintf("di: failed to get %s: %v", TypeOf[T](), err))
	}
	return result
}

// TryGet returns the cached T and true, or the zero value and false.
//
// Example:
//
//	if metrics, ok := di.TryGet[*demo.MetricsRepository](reg); ok {
//	    metrics.Record("login")
//	}
func TryGet[T any](r *Registry) (T, bool) {
	result, err := Get[T](r)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
