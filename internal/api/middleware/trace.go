// Package middleware provides HTTP middleware for the API router.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/astral-api/internal/api/shared"
	"github.com/phrazzld/astral-api/internal/platform/logger"
)

// Trace adds a trace ID to the request context and response headers, and
// stores a request-scoped logger carrying it. A trace ID sent by the client
// in X-Trace-ID is reused when well formed.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			ctx = logger.WithRequestID(ctx, traceID)
			ctx = logger.WithLogger(ctx, base)
			w.Header().Set(shared.TraceIDHeader, traceID)

			logger.FromContext(ctx).Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
