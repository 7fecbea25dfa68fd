package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type scopeKey struct{}

// scope is what a request carries for logging: its logger and the ids the
// logger was enriched with.
type scope struct {
	logger    *zap.Logger
	requestID string
	sessionID string
}

func scopeOf(ctx context.Context) scope {
	if ctx == nil {
		return scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s
}

func withScope(ctx context.Context, s scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithContext attaches logger to ctx, keeping any ids already there
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	s := scopeOf(ctx)
	s.logger = logger
	return withScope(ctx, s)
}

// FromContext returns the logger of ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, nil)
}

// FromContextOr returns the logger of ctx, or fallback. A nil fallback
// yields a no-op logger.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l := scopeOf(ctx).logger; l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

// WithRequestID records requestID on ctx and returns the enriched logger with it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.requestID = requestID
	s.logger = logger.With(zap.String("request_id", requestID))
	return withScope(ctx, s), s.logger
}

// WithSessionID records the sale session on ctx
func WithSessionID(ctx context.Context, logger *zap.Logger, sessionID string) (context.Context, *zap.Logger) {
	s := scopeOf(ctx)
	s.sessionID = sessionID
	s.logger = logger.With(zap.String("session_id", sessionID))
	return withScope(ctx, s), s.logger
}

// WithTraceContext adds trace_id and span_id of the active span, if any.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// Fields returns the request, session and trace ids of ctx as zap fields.
// It is meant for loggers that do not come from the context, such as gorm's.
func Fields(ctx context.Context) []zap.Field {
	s := scopeOf(ctx)
	var fields []zap.Field
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	if s.sessionID != "" {
		fields = append(fields, zap.String("session_id", s.sessionID))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
	}
	return fields
}
