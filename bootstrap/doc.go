// Package bootstrap runs a registry binary: it validates typed configuration,
// initializes logging, owns the service registry and drives startup and
// shutdown hooks.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg, demo.Catalog())
//	if err != nil {
//	    return err
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return di.Register[*demo.UserService](ctx, a.Registry)
//	})
//	return app.Run(ctx)
//
// Run blocks until SIGINT or SIGTERM; RunTask runs a finite task instead.
package bootstrap
