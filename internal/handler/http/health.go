package http

import (
	"context"
	"net/http"

	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
)

type HealthHandler interface {
	// Check reports whether the service and its database are reachable
	Check(w http.ResponseWriter, r *http.Request)
}

// HealthChecker is the readiness probe over the backing store.
type HealthChecker interface {
	Healthy(ctx context.Context) error
}

type healthHandlerImpl struct {
	db HealthChecker
}

func NewHealthHandler(db HealthChecker) HealthHandler {
	return &healthHandlerImpl{db: db}
}

// Check handles GET /health
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Healthy(r.Context()); err != nil {
		response.ServiceUnavailable(w, "Database unreachable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}
