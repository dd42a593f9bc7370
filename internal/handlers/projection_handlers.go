package handlers

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/internal/projection"
	"bizdash-backend/internal/services"
	"bizdash-backend/pkg/httputil"
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// ProjectionService defines the interface expected from the projection service.
type ProjectionService interface {
	Project(req models.ProjectionRequest) (*projection.Projection, error)
}

// InsightService defines the interface expected from the insight service.
type InsightService interface {
	Generate(ctx context.Context, summary projection.Summary) services.InsightResult
}

// ProjectionHandlers serves the financial simulator and its AI insights.
type ProjectionHandlers struct {
	projections ProjectionService
	insights    InsightService
	logger      *slog.Logger
}

func NewProjectionHandlers(projections ProjectionService, insights InsightService, logger *slog.Logger) *ProjectionHandlers {
	return &ProjectionHandlers{
		projections: projections,
		insights:    insights,
		logger:      logger.With("component", "projection_handler"),
	}
}

// HandleProject handles POST /v1/projections
func (h *ProjectionHandlers) HandleProject(w http.ResponseWriter, r *http.Request) {
	var req models.ProjectionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	p, err := h.projections.Project(req)
	if err != nil {
		if errors.Is(err, projection.ErrInvalidInput) {
			httputil.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("projection failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to compute projection")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, services.ToProjectionResponse(p))
}

// HandleInsight handles POST /v1/insights. Generation failures are reported
// in the body with the fallback text, never as an HTTP error.
func (h *ProjectionHandlers) HandleInsight(w http.ResponseWriter, r *http.Request) {
	var req models.InsightRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	result := h.insights.Generate(r.Context(), services.SummaryFromInsightRequest(req))
	httputil.RespondJSON(w, http.StatusOK, models.InsightResponse{
		State:    string(result.State),
		Text:     result.Text,
		Attempts: result.Attempts,
	})
}
