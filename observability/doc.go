// Package observability provides OpenTelemetry tracing for the GradLink
// client.
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("gradlink"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "session.bootstrap")
//	defer span.End()
package observability
