// Package rest exposes the risk calculator over HTTP.
package rest

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/scatauk/nela-api/internal/presentation/rest/middleware"
)

// RouterConfig wires the handlers served by NewRouter.
type RouterConfig struct {
	Logger    *slog.Logger
	Risk      *RiskHandler
	Schema    *SchemaHandler
	Health    *HealthHandler
	Metrics   http.Handler
	RateLimit int
}

// NewRouter builds the HTTP handler tree. Every route is traced and gets
// request IDs and request logging. The calculation route is also rate
// limited.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	calc := http.Handler(cfg.Risk)
	if cfg.RateLimit > 0 {
		calc = middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit))(calc)
	}
	mux.Handle("POST /nela-risk", calc)
	mux.Handle("GET /schema.json", cfg.Schema)
	if cfg.Health != nil {
		cfg.Health.RegisterRoutes(mux)
	}
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Logging(cfg.Logger),
	)
	return otelhttp.NewHandler(handler, "nela-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
