package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/handler/http/response"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
)

type PayrollHandler interface {
	// Generate ensures the period's payrun exists and materializes its lines
	Generate(w http.ResponseWriter, r *http.Request)
	// Get returns one payrun with totals
	Get(w http.ResponseWriter, r *http.Request)
	// Lines returns the payrun's lines
	Lines(w http.ResponseWriter, r *http.Request)
	// EmployeeLine returns one employee's line in the payrun
	EmployeeLine(w http.ResponseWriter, r *http.Request)
	// Finalize performs the one-way draft -> finalized transition
	Finalize(w http.ResponseWriter, r *http.Request)
	// GeneratePayslip snapshots one finalized line into a payslip
	GeneratePayslip(w http.ResponseWriter, r *http.Request)
	// GetPayslip returns one stored payslip
	GetPayslip(w http.ResponseWriter, r *http.Request)
	// DownloadPayslip renders the stored payslip as PDF
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrunService  payroll.PayrunService
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payrunService payroll.PayrunService, payslipService payroll.PayslipService) PayrollHandler {
	return &payrollHandlerImpl{
		payrunService:  payrunService,
		payslipService: payslipService,
	}
}

// Generate handles POST /payruns
func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.CompanyID = companyID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	p := period.OfMonth(req.PeriodYear, time.Month(req.PeriodMonth))
	run, err := h.payrunService.EnsurePayrun(r.Context(), req.CompanyID, p)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	run, err = h.payrunService.MaterializeLines(r.Context(), run)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrun materialized", toPayrunResponse(run))
}

// Get handles GET /payruns/{id}
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	run, err := h.payrunService.GetPayrun(r.Context(), chi.URLParam(r, "id"), companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toPayrunResponse(run))
}

// Lines handles GET /payruns/{id}/lines
func (h *payrollHandlerImpl) Lines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.payrunService.ListLines(r.Context(), chi.URLParam(r, "id"), companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]payroll.PayrunLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, toPayrunLineResponse(line))
	}
	response.Success(w, out)
}

// EmployeeLine handles GET /payruns/{id}/employees/{employeeID}/line
func (h *payrollHandlerImpl) EmployeeLine(w http.ResponseWriter, r *http.Request) {
	line, err := h.payrunService.GetEmployeeLine(
		r.Context(), chi.URLParam(r, "id"), companyID(r), chi.URLParam(r, "employeeID"),
	)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toPayrunLineResponse(line))
}

// Finalize handles POST /payruns/{id}/finalize
func (h *payrollHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorID   string `json:"actor_id"`
		ActorRole string `json:"actor_role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	run, err := h.payrunService.Finalize(r.Context(), chi.URLParam(r, "id"), companyID(r), req.ActorID, req.ActorRole)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payrun finalized", toPayrunResponse(run))
}

// GeneratePayslip handles POST /payruns/lines/{lineID}/payslip
func (h *payrollHandlerImpl) GeneratePayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payslipService.Generate(r.Context(), chi.URLParam(r, "lineID"), companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip generated", toPayslipResponse(slip))
}

// GetPayslip handles GET /payslips/{id}
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	slip, err := h.payslipService.GetByID(r.Context(), chi.URLParam(r, "id"), companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, toPayslipResponse(slip))
}

// DownloadPayslip handles GET /payslips/{id}/pdf
func (h *payrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := h.payslipService.RenderPDF(r.Context(), id, companyID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func toPayrunResponse(run payroll.Payrun) payroll.PayrunResponse {
	resp := payroll.PayrunResponse{
		ID:              run.ID,
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		Status:          string(run.Status),
		TotalGross:      run.TotalGross,
		TotalDeductions: run.TotalDeductions,
		TotalNet:        run.TotalNet,
	}
	if run.FinalizedAt != nil {
		finalizedAt := run.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &finalizedAt
	}
	return resp
}

func toPayrunLineResponse(line payroll.PayrunLine) payroll.PayrunLineResponse {
	resp := payroll.PayrunLineResponse{
		ID:              line.ID,
		EmployeeID:      line.EmployeeID,
		Gross:           line.Gross,
		UnpaidDeduction: line.UnpaidDeduction,
		PFEmployee:      line.PFEmployee,
		ProfessionalTax: line.ProfessionalTax,
		OtherDeductions: line.OtherDeductions,
		Net:             line.Net,
		UnpaidDays:      line.UnpaidDays,
		WorkingDays:     line.WorkingDays,
		Warnings:        line.Warnings,
	}
	if line.EmployeeName != nil {
		resp.EmployeeName = *line.EmployeeName
	}
	if line.EmployeeCode != nil {
		resp.EmployeeCode = *line.EmployeeCode
	}
	return resp
}

func toPayslipResponse(slip payroll.Payslip) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:              slip.ID,
		EmployeeCode:    slip.EmployeeCode,
		EmployeeName:    slip.EmployeeName,
		Department:      slip.Department,
		PeriodStart:     slip.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       slip.PeriodEnd.Format("2006-01-02"),
		Gross:           slip.Gross,
		UnpaidDeduction: slip.UnpaidDeduction,
		PFEmployee:      slip.PFEmployee,
		ProfessionalTax: slip.ProfessionalTax,
		OtherDeductions: slip.OtherDeductions,
		Net:             slip.Net,
		GeneratedAt:     slip.GeneratedAt.Format(time.RFC3339),
	}
}
