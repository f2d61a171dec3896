package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/internal/telemetry"
	"github.com/marmos91/snapserve/pkg/metrics"
)

// NewRouter creates the chi router serving static files.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - A tracing span per request
//   - Request logging using the internal logger
//   - Panic recovery to prevent server crashes
//
// Every method and every path is handled by the static handler.
func NewRouter(res Resolver, m metrics.StaticMetrics) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(tracing)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Handle("/*", newStaticHandler(res, m))

	return r
}

// tracing starts a server span, continuing any trace propagated by the client.
func tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := telemetry.StartSpan(ctx, telemetry.SpanHTTPRequest,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				telemetry.HTTPMethod(r.Method),
				telemetry.URLPath(r.URL.Path),
				telemetry.ClientAddress(r.RemoteAddr),
				telemetry.RequestID(middleware.GetReqID(r.Context())),
			),
		)
		defer span.End()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		span.SetAttributes(telemetry.HTTPStatusCode(ww.Status()))
	})
}

// requestLogger attaches a LogContext to the request and logs its completion.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		lc := logger.NewLogContext(middleware.GetReqID(ctx), r.Method, r.URL.Path, r.RemoteAddr).
			WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
		ctx = logger.WithContext(ctx, lc)

		logger.DebugCtx(ctx, "Request started")

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logArgs := []any{
			logger.KeyStatus, ww.Status(),
			logger.KeyBytes, ww.BytesWritten(),
			logger.KeyContentType, ww.Header().Get("Content-Type"),
			logger.KeyDurationMs, float64(time.Since(lc.StartTime).Microseconds()) / 1000,
		}

		if ww.Status() == http.StatusNotFound {
			logger.DebugCtx(ctx, "Request completed", logArgs...)
		} else {
			logger.InfoCtx(ctx, "Request completed", logArgs...)
		}
	})
}
