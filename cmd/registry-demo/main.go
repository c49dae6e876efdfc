// Command registry-demo registers the demo service graph, prints what was
// built and optionally serves the inspect API until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/svcregistry/bootstrap"
	"github.com/kbukum/svcregistry/demo"
	"github.com/kbukum/svcregistry/inspect"
	"github.com/kbukum/svcregistry/observability"
	"github.com/kbukum/svcregistry/version"
)

func main() {
	configFile := flag.String("config", "", "path to config.yml (default: search cmd/registry-demo and ./)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Get().String())
		return
	}

	if err := run(context.Background(), *configFile); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string) error {
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}

	app, err := bootstrap.NewApp(cfg, demo.Catalog(), bootstrap.WithSummaryOutput(os.Stderr))
	if err != nil {
		return err
	}
	app.Logger.Info("version", version.Get().Fields())

	if cfg.Observability.Tracing || cfg.Observability.Metrics {
		app.OnStart(func(ctx context.Context) error {
			return setupTelemetry(ctx, app, cfg)
		})
	}
	app.OnConfigure(registerRoots)
	app.OnReady(func(context.Context) error {
		return writeDump(os.Stdout, cfg.Registry.DumpFormat, Dump{
			Service:    app.Name,
			RegistryID: app.Registry.ID(),
			Instances:  app.Registry.Registrations(),
		})
	})

	if !cfg.Inspect.Enabled {
		return app.RunTask(ctx, func(context.Context) error { return nil })
	}

	handler := inspect.NewHandler(app.Registry,
		inspect.WithLogger(app.Logger.WithComponent("inspect")),
		inspect.WithService(app.Name),
	)
	srv := inspect.NewServer(cfg.Inspect, handler, app.Logger)
	app.OnReady(srv.Start)
	app.OnStop(srv.Stop)
	return app.Run(ctx)
}

// registerRoots registers every configured root in order.
func registerRoots(ctx context.Context, app *bootstrap.App[*AppConfig]) error {
	for _, name := range app.Cfg.Registry.Roots {
		t, err := demo.Root(name)
		if err != nil {
			return err
		}
		if err := app.Registry.Register(ctx, t); err != nil {
			return fmt.Errorf("registering %s: %w", name, err)
		}
	}
	return nil
}

// setupTelemetry installs the OTLP providers and schedules their shutdown.
func setupTelemetry(ctx context.Context, app *bootstrap.App[*AppConfig], cfg *AppConfig) error {
	o := cfg.Observability
	if o.Tracing {
		tc := observability.DefaultTracerConfig(app.Name)
		tc.ServiceVersion = version.Get().Short()
		tc.Environment = cfg.Base.Environment
		tc.Endpoint = o.Endpoint
		tc.SampleRate = o.SampleRate
		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return err
		}
		app.OnStop(tp.Shutdown)
	}
	if o.Metrics {
		mc := observability.DefaultMeterConfig(app.Name)
		mc.ServiceVersion = version.Get().Short()
		mc.Environment = cfg.Base.Environment
		mc.Endpoint = o.Endpoint
		mp, err := observability.InitMeter(ctx, &mc)
		if err != nil {
			return err
		}
		app.OnStop(mp.Shutdown)
	}
	return nil
}
