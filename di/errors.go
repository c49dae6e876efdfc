package di

import (
	"reflect"

	"github.com/kbukum/svcregistry/errors"
)

// IsNotRegistered reports whether err is a lookup of a type with no cached instance.
func IsNotRegistered(err error) bool {
	return errors.HasCode(err, errors.ErrCodeNotRegistered)
}

// IsNoEligibleConstructor reports whether err is a failed constructor selection.
func IsNoEligibleConstructor(err error) bool {
	return errors.HasCode(err, errors.ErrCodeNoEligibleConstructor)
}

// IsConstructionFailure reports whether err is a constructor that errored,
// panicked or returned nil.
func IsConstructionFailure(err error) bool {
	return errors.HasCode(err, errors.ErrCodeConstructionFailed)
}

// IsCyclicDependency reports whether err is a dependency cycle.
func IsCyclicDependency(err error) bool {
	return errors.HasCode(err, errors.ErrCodeCyclicDependency)
}

// typeName is the display form of a type descriptor.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func typeNames(ts []reflect.Type) []string {
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = typeName(t)
	}
	return names
}

func invalidConstructor(fnType reflect.Type, reason string) *errors.AppError {
	return errors.InvalidConstructor(typeName(fnType), reason)
}

func cyclicDependency(cycle []reflect.Type) *errors.AppError {
	return errors.CyclicDependency(typeNames(cycle))
}
