package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"conferencehall/internal/delivery/http/controllers"
	"conferencehall/internal/delivery/http/middleware"
	"conferencehall/internal/domain"
)

// RouterConfig holds what the router needs besides the controllers.
type RouterConfig struct {
	Logger         *slog.Logger
	Verifier       domain.TokenVerifier
	AllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// with the request ID, logging, CORS and metrics middleware.
func NewRouter(cfg RouterConfig, resultsController *controllers.ResultsController, healthController *controllers.HealthController) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.Verifier, cfg.Logger)

	// Results
	mux.HandleFunc("GET /teams/{team}/events/{event}/results/statistics", auth(resultsController.Statistics))
	mux.HandleFunc("POST /teams/{team}/events/{event}/results/publish", auth(resultsController.Publish))
	mux.HandleFunc("POST /teams/{team}/events/{event}/results/publish-all", auth(resultsController.PublishAll))
	mux.HandleFunc("DELETE /teams/{team}/events/{event}/results/publication", auth(resultsController.ResetPublication))

	// Operations
	mux.HandleFunc("GET /healthz", healthController.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Metrics must see the request the mux sets Pattern on, so it wraps the mux directly.
	var handler http.Handler = middleware.Metrics(mux)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	return middleware.RequestID(handler)
}
