package di

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

var (
	// ErrConstructorPanic is the cause recorded when a constructor panics.
	ErrConstructorPanic = stderrors.New("di: constructor panicked")

	// ErrNilInstance is the cause recorded when a constructor returns a nil
	// pointer, interface, map, slice, func or chan.
	ErrNilInstance = stderrors.New("di: constructor returned nil")

	// ErrArgumentCount is the cause recorded when Invoke receives the wrong
	// number of arguments.
	ErrArgumentCount = stderrors.New("di: wrong number of constructor arguments")
)

var errorType = reflect.TypeFor[error]()

// Constructor describes one way to build a value of Type().
type Constructor interface {
	// Type is the type the constructor produces; it is the registry key.
	Type() reflect.Type
	// Params lists the parameter types in declared order.
	Params() []reflect.Type
	// Injected reports whether the constructor carries the injection marker.
	Injected() bool
	// Invoke calls the constructor with one argument per parameter.
	Invoke(args []reflect.Value) (reflect.Value, error)
	// String names the constructor in logs and errors.
	String() string
}

// ProvideOption configures a constructor added to a Catalog.
type ProvideOption func(*funcConstructor)

// Inject marks the constructor as the one the registry must prefer for its type.
func Inject() ProvideOption {
	return func(c *funcConstructor) { c.injected = true }
}

// funcConstructor adapts a Go function returning T or (T, error).
type funcConstructor struct {
	fn       reflect.Value
	out      reflect.Type
	params   []reflect.Type
	injected bool
	name     string
}

func newFuncConstructor(fn any, opts ...ProvideOption) (*funcConstructor, error) {
	if fn == nil {
		return nil, invalidConstructor(nil, "constructor is nil")
	}
	v := reflect.ValueOf(fn)
	ft := v.Type()
	switch {
	case ft.Kind() != reflect.Func:
		return nil, invalidConstructor(ft, "not a function")
	case v.IsNil():
		return nil, invalidConstructor(ft, "constructor is nil")
	case ft.IsVariadic():
		return nil, invalidConstructor(ft, "variadic constructors are not supported")
	case ft.NumOut() == 0 || ft.NumOut() > 2:
		return nil, invalidConstructor(ft, "must return T or (T, error)")
	case ft.Out(0) == errorType:
		return nil, invalidConstructor(ft, "first result must not be error")
	case ft.NumOut() == 2 && ft.Out(1) != errorType:
		return nil, invalidConstructor(ft, "second result must be error")
	}

	params := make([]reflect.Type, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}

	c := &funcConstructor{
		fn:     v,
		out:    ft.Out(0),
		params: params,
		name:   funcName(v),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *funcConstructor) Type() reflect.Type { return c.out }

func (c *funcConstructor) Params() []reflect.Type {
	out := make([]reflect.Type, len(c.params))
	copy(out, c.params)
	return out
}

func (c *funcConstructor) Injected() bool { return c.injected }

func (c *funcConstructor) String() string { return c.name }

// Invoke calls the function. A returned error, a panic and a nil result all
// come back as an error; the caller attaches the type context.
func (c *funcConstructor) Invoke(args []reflect.Value) (out reflect.Value, err error) {
	if len(args) != len(c.params) {
		return reflect.Value{}, fmt.Errorf("%w: want %d, got %d", ErrArgumentCount, len(c.params), len(args))
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = reflect.Value{}
			err = fmt.Errorf("%w: %v", ErrConstructorPanic, rec)
		}
	}()

	results := c.fn.Call(args)
	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}
	if isNil(results[0]) {
		return reflect.Value{}, ErrNilInstance
	}
	return results[0], nil
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// funcName returns pkg.Func for named functions and falls back to the
// signature for closures the runtime cannot name.
func funcName(v reflect.Value) string {
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		name := f.Name()
		if idx := strings.LastIndex(name, "/"); idx != -1 {
			name = name[idx+1:]
		}
		if name != "" {
			return name
		}
	}
	return v.Type().String()
}
