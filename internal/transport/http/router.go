package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sift/internal/platform/config"
	"sift/internal/platform/health"
	"sift/internal/platform/middleware"
	"sift/internal/screening/handler"
	"sift/pkg/platform/httputil"
	"sift/pkg/platform/validation"
)

// welcomeMessage greets unauthenticated callers probing the service root.
const welcomeMessage = "Welcome to the Tenant Screening API"

// NewRouter wires all public endpoints with middleware.
// Evaluation endpoints sit behind service auth unless auth is disabled
// for local development; health, metrics, and the welcome route stay open.
func NewRouter(
	cfg config.Server,
	screeningHandler *handler.Handler,
	healthHandler *health.Handler,
	validator middleware.TokenValidator,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.BodyLimit(validation.MaxBodySize))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/", handleWelcome)
	healthHandler.Register(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if !cfg.AuthDisabled {
			r.Use(middleware.RequireServiceAuth(validator, cfg.APIKeyHash, logger))
		}
		screeningHandler.Register(r)
	})

	return r
}

func handleWelcome(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": welcomeMessage,
	})
}
