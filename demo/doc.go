// Package demo is a small service graph used by the registry-demo binary and
// as a fixture: a database shared by two repositories, both consumed by a
// user service.
//
//	reg := di.New(demo.Catalog())
//	if err := di.Register[*demo.UserService](ctx, reg); err != nil {
//	    return err
//	}
//	svc := di.MustGet[*demo.UserService](reg)
package demo
