// Package observability wires OpenTelemetry tracing and metrics for the
// service registry and the binaries embedding it.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("registry-demo"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRegistryMetrics(observability.Meter(observability.InstrumentationName))
//
// Registries report through the global providers unless given explicit ones;
// until InitTracer/InitMeter run those record nothing.
package observability
