package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sift/internal/platform/middleware"
	"sift/internal/screening/models"
	"sift/internal/screening/service"
	"sift/pkg/platform/httputil"
)

// Service defines the interface for match evaluation.
// Returns domain objects, not HTTP response DTOs.
type Service interface {
	Evaluate(ctx context.Context, tenant *models.Tenant, pipeline []models.PipelineBlock) ([]models.MatchEvaluation, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/evaluate", h.HandleEvaluate)
}

// HandleEvaluate scores every screening result in the submitted pipeline
// against the submitted tenant and returns one evaluation per result, in
// pipeline order, together with a per-tier tally.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	evaluations, err := h.service.Evaluate(ctx, req.ToTenant(), req.ToPipeline())
	if err != nil {
		h.logger.ErrorContext(ctx, "pipeline evaluation failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toEvaluateResponse(evaluations, service.TierCounts(evaluations)))
}
