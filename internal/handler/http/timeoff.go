package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/validator"
	"github.com/hrpulse-id/payroll-backend-go/internal/service/leave"
)

type TimeOffHandler interface {
	// Submit creates a pending time off request
	Submit(w http.ResponseWriter, r *http.Request)
	// Decide approves or rejects a pending request
	Decide(w http.ResponseWriter, r *http.Request)
	// Balance returns the employee's leave accounting for a year
	Balance(w http.ResponseWriter, r *http.Request)
}

type timeOffHandlerImpl struct {
	requestService *leave.RequestService
	balanceService *leave.BalanceService
}

func NewTimeOffHandler(requestService *leave.RequestService, balanceService *leave.BalanceService) TimeOffHandler {
	return &timeOffHandlerImpl{
		requestService: requestService,
		balanceService: balanceService,
	}
}

// Submit handles POST /time-off
func (h *timeOffHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string  `json:"employee_id"`
		Type       string  `json:"type"`
		FromDate   string  `json:"from_date"`
		ToDate     string  `json:"to_date"`
		Reason     *string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	from, okFrom := validator.IsValidDate(req.FromDate)
	to, okTo := validator.IsValidDate(req.ToDate)
	if !okFrom || !okTo {
		response.ValidationError(w, map[string]string{
			"from_date": "must be a valid date (YYYY-MM-DD)",
			"to_date":   "must be a valid date (YYYY-MM-DD)",
		})
		return
	}

	created, err := h.requestService.Submit(r.Context(), timeoff.TimeOff{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID(r),
		Type:       req.Type,
		FromDate:   from,
		ToDate:     to,
		Reason:     req.Reason,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time off requested", created)
}

// Decide handles PATCH /time-off/{id}/decision
func (h *timeOffHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.requestService.Decide(r.Context(), id, req.Approve); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time off request decided", nil)
}

// Balance handles GET /time-off/{employeeID}/balance?year=YYYY
func (h *timeOffHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	year := time.Now().UTC().Year()
	if yearStr := r.URL.Query().Get("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			response.ValidationError(w, map[string]string{"year": "must be numeric"})
			return
		}
		year = parsed
	}

	balance, err := h.balanceService.Balance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balance)
}
