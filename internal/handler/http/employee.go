package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
	employeeService "github.com/hrpulse-id/payroll-backend-go/internal/service/employee"
)

type EmployeeHandler interface {
	// Provision creates an employee profile with a generated code
	Provision(w http.ResponseWriter, r *http.Request)
	// GetByID returns one employee
	GetByID(w http.ResponseWriter, r *http.Request)
	// UpdateStatus moves an employee through the soft lifecycle
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	provisioningService *employeeService.ProvisioningService
}

func NewEmployeeHandler(provisioningService *employeeService.ProvisioningService) EmployeeHandler {
	return &employeeHandlerImpl{provisioningService: provisioningService}
}

// Provision handles POST /employees
func (h *employeeHandlerImpl) Provision(w http.ResponseWriter, r *http.Request) {
	var req employee.ProvisionEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CompanyID = companyID(r)

	created, err := h.provisioningService.Provision(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee provisioned", toEmployeeResponse(created))
}

// GetByID handles GET /employees/{id}
func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	emp, err := h.provisioningService.GetByID(r.Context(), id, companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toEmployeeResponse(emp))
}

// UpdateStatus handles PATCH /employees/{id}/status
func (h *employeeHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	status := employee.Status(req.Status)
	switch status {
	case employee.StatusActive, employee.StatusInactive, employee.StatusTerminated:
	default:
		response.BadRequest(w, "Unknown employee status", map[string]string{"status": req.Status})
		return
	}

	if err := h.provisioningService.UpdateStatus(r.Context(), id, companyID(r), status); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee status updated", nil)
}

func toEmployeeResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName(),
		Department:   emp.Department,
		JoinDate:     emp.JoinDate.Format("2006-01-02"),
		BaseSalary:   emp.BaseSalary,
		Allowances:   emp.Allowances,
		Status:       string(emp.Status),
	}
}
