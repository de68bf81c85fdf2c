package logging

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey struct{}

type tagsKey struct{}

// requestTags are fields attached to the completion line by code running inside the request. A later
// value replaces an earlier one with the same key.
type requestTags struct {
	mu     sync.Mutex
	order  []string
	fields map[string]zap.Field
}

func (t *requestTags) set(fields []zap.Field) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, f := range fields {
		if _, seen := t.fields[f.Key]; !seen {
			t.order = append(t.order, f.Key)
		}
		t.fields[f.Key] = f
	}
}

func (t *requestTags) list() []zap.Field {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]zap.Field, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.fields[key])
	}
	return out
}

// Tag adds fields to the "request completed" line of the current request. Outside RequestLogger it does nothing.
func Tag(ctx context.Context, fields ...zap.Field) {
	if tags, ok := ctx.Value(tagsKey{}).(*requestTags); ok {
		tags.set(fields)
	}
}

// WithLogger stores the provided logger on the context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the logger from context, if present.
func FromContext(ctx context.Context) (*zap.Logger, bool) {
	logger, ok := ctx.Value(ctxKey{}).(*zap.Logger)
	return logger, ok && logger != nil
}

// FromContextOr returns the request-scoped logger, falling back to fallback and then to a no-op logger.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if logger, ok := FromContext(ctx); ok {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return zap.NewNop()
}

// FromRequest pulls the request-scoped logger from the HTTP request when available, falling back to the provided default.
func FromRequest(r *http.Request, fallback *zap.Logger) *zap.Logger {
	return FromContextOr(r.Context(), fallback)
}

// With adds fields to the request-scoped logger for everything downstream of the returned context.
func With(ctx context.Context, fields ...zap.Field) context.Context {
	logger, ok := FromContext(ctx)
	if !ok {
		return ctx
	}
	return WithLogger(ctx, logger.With(fields...))
}

// RequestLogger stores a request-scoped logger on the context and logs one completion line per request,
// including every field handed to Tag on the way. Server errors log at Error, rejected requests at Warn and
// everything else (404 included) at Info.
func RequestLogger(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := middleware.GetReqID(r.Context())

			logger := base
			if requestID != "" {
				logger = logger.With(zap.String("request_id", requestID))
			}

			logger = logger.With(
				zap.String("http_method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)

			tags := &requestTags{fields: map[string]zap.Field{}}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ctx := context.WithValue(WithLogger(r.Context(), logger), tagsKey{}, tags)

			next.ServeHTTP(ww, r.WithContext(ctx))

			fields := append(tags.list(),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
			logger.Log(levelForStatus(ww.Status()), "request completed", fields...)
		})
	}
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zapcore.ErrorLevel
	case status == http.StatusNotFound:
		return zapcore.InfoLevel
	case status >= http.StatusBadRequest:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}
