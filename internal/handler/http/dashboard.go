package http

import (
	"net/http"

	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
	dashboardService "github.com/hrpulse-id/payroll-backend-go/internal/service/dashboard"
)

type DashboardHandler interface {
	// Overview returns the combined read-only rollup
	Overview(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService *dashboardService.Service
}

func NewDashboardHandler(svc *dashboardService.Service) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: svc}
}

// Overview handles GET /dashboard
func (h *dashboardHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context(), companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overview)
}
