// Package di provides a service registry that builds singletons by resolving
// constructor dependencies recursively.
//
// Constructors are plain functions provided to a Catalog. The registry keys
// instances by the constructor's result type and satisfies each parameter
// with the registry's instance of that parameter type, building it first when
// needed.
//
// # Constructor selection
//
// For each type the registry picks the constructor marked with Inject(). With
// no marked constructor it falls back to the only constructor that takes
// exactly one parameter. Anything else fails with NO_ELIGIBLE_CONSTRUCTOR.
//
// # Registration
//
//	catalog := di.NewCatalog().
//	    MustProvide(NewDataBase, di.Inject()).
//	    MustProvide(NewUserRepository, di.Inject()).
//	    MustProvide(NewUserService, di.Inject())
//
//	reg := di.New(catalog)
//	err := di.Register[*UserService](ctx, reg)
//
// # Lookup
//
//	svc, err := di.Get[*UserService](reg)
//
// Get never constructs. Registering a type twice constructs it once, and a
// dependency cycle is reported as CYCLIC_DEPENDENCY instead of recursing.
package di
