package response

import (
	"errors"
	"net/http"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateDate):
		Conflict(w, "Attendance already recorded for this date")

	// Time off domain errors
	case errors.Is(err, timeoff.ErrTimeOffNotFound):
		NotFound(w, "Time off request not found")
	case errors.Is(err, timeoff.ErrInvalidSpan):
		BadRequest(w, "Time off span is invalid", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrunNotFound):
		NotFound(w, "Payrun not found")
	case errors.Is(err, payroll.ErrPayrunExists):
		Conflict(w, "A payrun already exists for this period")
	case errors.Is(err, payroll.ErrPayrunFinalized):
		Conflict(w, "Payrun is already finalized")
	case errors.Is(err, payroll.ErrPayrunNotFinalized):
		Conflict(w, "Payrun has not been finalized")
	case errors.Is(err, payroll.ErrPayrunLineNotFound):
		NotFound(w, "Payrun line not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Payroll period is invalid", nil)
	case errors.Is(err, payroll.ErrEmployeeNotInPayrun):
		NotFound(w, "Employee has no line in this payrun")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
