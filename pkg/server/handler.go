package server

import (
	"context"
	"net/http"
	"time"

	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/pkg/metrics"
	"github.com/marmos91/snapserve/pkg/resolver"
)

// notFoundBody is written verbatim on every 404.
const notFoundBody = "Not found"

// Resolver resolves a request path to file content.
type Resolver interface {
	Resolve(ctx context.Context, requestPath string) (*resolver.Result, error)
}

// staticHandler serves every method and path from a Resolver.
type staticHandler struct {
	resolver Resolver
	metrics  metrics.StaticMetrics
}

func newStaticHandler(res Resolver, m metrics.StaticMetrics) *staticHandler {
	return &staticHandler{resolver: res, metrics: m}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	res, err := h.resolver.Resolve(r.Context(), r.URL.Path)
	if err != nil {
		if !resolver.IsNotFound(err) {
			logger.ErrorCtx(r.Context(), "Unexpected resolver error", logger.KeyError, err)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundBody))
		h.observe(metrics.OutcomeNotFound, "", len(notFoundBody), start)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Content); err != nil {
		logger.DebugCtx(r.Context(), "Response write failed", logger.KeyError, err)
	}
	h.observe(metrics.OutcomeServed, res.ContentType, len(res.Content), start)
}

func (h *staticHandler) observe(outcome, contentType string, n int, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObserveRequest(outcome, contentType, n, time.Since(start))
}
