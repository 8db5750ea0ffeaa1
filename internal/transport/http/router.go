package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"pulsecli/internal/config"
	appmiddleware "pulsecli/internal/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Charts   *ChartHandler
	Dataset  *DatasetHandler
	Health   *HealthHandler
	Metrics  http.Handler
	WS       http.HandlerFunc
	Logger   *slog.Logger
	Security config.SecurityConfig
}

// NewRouter assembles the full HTTP surface with the middleware stack.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.StructuredLogger(deps.Logger))
	r.Use(appmiddleware.Recoverer(deps.Logger))
	r.Use(appmiddleware.CORS(deps.Security.AllowedOrigins))
	r.Use(appmiddleware.RateLimit(deps.Security.RateLimit))

	r.Route("/api", func(r chi.Router) {
		r.Mount("/charts", deps.Charts.Routes())
		r.Mount("/dataset", deps.Dataset.Routes())
		r.Get("/health", deps.Health.Health)
	})

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics)
	}
	if deps.WS != nil {
		r.Get("/ws", deps.WS)
	}

	return r
}
