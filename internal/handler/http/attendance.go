package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/validator"
	attendanceService "github.com/hrpulse-id/payroll-backend-go/internal/service/attendance"
)

type AttendanceHandler interface {
	// Record stores one attendance row per employee per date
	Record(w http.ResponseWriter, r *http.Request)
	// Summary returns the period reduction for one employee and month
	Summary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceRepo attendance.AttendanceRepository
	aggregator     *attendanceService.AggregatorService
}

func NewAttendanceHandler(attendanceRepo attendance.AttendanceRepository, aggregator *attendanceService.AggregatorService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceRepo: attendanceRepo,
		aggregator:     aggregator,
	}
}

// Record handles POST /attendances
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"employee_id"`
		Date       string `json:"date"`
		Status     string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		response.ValidationError(w, map[string]string{"date": "must be a valid date (YYYY-MM-DD)"})
		return
	}

	status := attendance.Status(req.Status)
	switch status {
	case attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate, attendance.StatusHalfDay:
	default:
		response.ValidationError(w, map[string]string{"status": "must be one of present, absent, late, half_day"})
		return
	}

	created, err := h.attendanceRepo.Record(r.Context(), attendance.Attendance{
		EmployeeID: req.EmployeeID,
		CompanyID:  companyID(r),
		Date:       date,
		Status:     status,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", created)
}

// Summary handles GET /attendances/{employeeID}/summary?year=YYYY&month=M
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	p, ok := monthParam(r)
	if !ok {
		response.ValidationError(w, map[string]string{"month": "year and month query params must form a valid month"})
		return
	}

	summary, err := h.aggregator.SummarizePeriod(r.Context(), employeeID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// monthParam reads year/month query params, defaulting to the current month.
func monthParam(r *http.Request) (period.Period, bool) {
	now := time.Now().UTC()
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")
	if yearStr == "" && monthStr == "" {
		return period.Of(now), true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return period.Period{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return period.Period{}, false
	}
	return period.OfMonth(year, time.Month(month)), true
}
