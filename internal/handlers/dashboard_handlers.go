package handlers

import (
	"bizdash-backend/internal/models"
	"bizdash-backend/pkg/httputil"
	"net/http"
)

// DashboardService defines the interface expected from the dashboard service.
type DashboardService interface {
	Dashboard() models.DashboardResponse
	Companies() []models.CompanySummary
}

type DashboardHandlers struct {
	dashboard DashboardService
}

func NewDashboardHandlers(dashboard DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboard: dashboard}
}

// HandleGetDashboard handles GET /v1/dashboard
func (h *DashboardHandlers) HandleGetDashboard(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.dashboard.Dashboard())
}

// HandleListCompanies handles GET /v1/companies
func (h *DashboardHandlers) HandleListCompanies(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.dashboard.Companies())
}
