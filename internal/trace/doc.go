// Package trace records what a bundling run spends its time on.
//
// Tracing is switched on from the command line:
//
//	modbundle build --trace=- --trace-level=detail
//
// A Tracer receives span begin/end events and writes them as text or NDJSON.
// When tracing is off the package-level Nop tracer is used, and Begin returns
// a span whose methods do nothing.
//
// # Levels
//
//   - LevelOff: nothing
//   - LevelPhase: commands and passes (load, write)
//   - LevelDetail: one span per loaded module
//   - LevelDebug: everything
//
// # Context propagation
//
// The tracer and the current span travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "load", trace.CurrentSpan(ctx).SpanID)
//	ctx = trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()})
//	defer span.End("")
package trace
