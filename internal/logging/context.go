package logging

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

type traceIDKey struct{}

// TraceIDField is the log field carrying the run's trace ID.
const TraceIDField = "trace_id"

// GenerateTraceID returns a new ULID string.
func GenerateTraceID() string {
	return ulid.Make().String()
}

// ContextWithTraceID stores a trace ID in ctx.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceIDFromContext returns the trace ID stored in ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the trace ID in ctx, generating one when absent.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	return GenerateTraceID()
}

// FromContext returns the logger stored in ctx. With none stored it returns
// the zerolog default context logger, which is disabled unless configured.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// TraceIDHook adds the trace ID of an event's context, when the event has
// one attached through Event.Ctx.
type TraceIDHook struct{}

// Run implements zerolog.Hook.
func (TraceIDHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str(TraceIDField, id)
	}
}
