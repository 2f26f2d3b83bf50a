// Package observability wires OpenTelemetry tracing and metrics for
// outbound requests.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("billing"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("billing"))
//	defer mp.Shutdown(ctx)
//	metrics, err := observability.NewMetrics(observability.Meter())
//
// The httpclient.WithTracing and httpclient.WithMetrics transport
// middlewares consume these.
package observability
