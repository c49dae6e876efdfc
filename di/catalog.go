package di

import (
	"reflect"
	"sync"
)

// Introspector enumerates the constructors known for a type.
type Introspector interface {
	Constructors(t reflect.Type) []Constructor
}

// Catalog is an Introspector backed by explicitly provided constructor
// functions. Each function's first result type is the type it constructs;
// several functions may construct the same type.
//
//	catalog := di.NewCatalog().
//	    MustProvide(NewDataBase, di.Inject()).
//	    MustProvide(NewUserRepository, di.Inject())
type Catalog struct {
	mu    sync.RWMutex
	ctors map[reflect.Type][]Constructor
	types []reflect.Type
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{ctors: make(map[reflect.Type][]Constructor)}
}

// Provide adds fn as a constructor for its first result type. fn must be a
// non-variadic function returning T or (T, error).
func (c *Catalog) Provide(fn any, opts ...ProvideOption) error {
	ctor, err := newFuncConstructor(fn, opts...)
	if err != nil {
		return err
	}
	c.Add(ctor)
	return nil
}

// MustProvide is Provide that panics on an invalid constructor. It returns
// the catalog for chaining.
func (c *Catalog) MustProvide(fn any, opts ...ProvideOption) *Catalog {
	if err := c.Provide(fn, opts...); err != nil {
		panic(err)
	}
	return c
}

// Add registers a Constructor implemented outside this package.
func (c *Catalog) Add(ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := ctor.Type()
	if _, known := c.ctors[t]; !known {
		c.types = append(c.types, t)
	}
	c.ctors[t] = append(c.ctors[t], ctor)
}

// Constructors implements Introspector. Constructors are returned in the
// order they were provided.
func (c *Catalog) Constructors(t reflect.Type) []Constructor {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ctors := c.ctors[t]
	out := make([]Constructor, len(ctors))
	copy(out, ctors)
	return out
}

// Types returns every type with at least one constructor, in first-provided order.
func (c *Catalog) Types() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]reflect.Type, len(c.types))
	copy(out, c.types)
	return out
}
