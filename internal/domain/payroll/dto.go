package payroll

import (
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrunRequest struct {
	CompanyID   string `json:"-"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
}

func (r *GeneratePayrunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrunResponse struct {
	ID              string          `json:"id"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Status          string          `json:"status"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	LineCount       int             `json:"line_count,omitempty"`
	FinalizedAt     *string         `json:"finalized_at,omitempty"`
}

type PayrunLineResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeCode    string          `json:"employee_code,omitempty"`
	Gross           decimal.Decimal `json:"gross"`
	UnpaidDeduction decimal.Decimal `json:"unpaid_deduction"`
	PFEmployee      decimal.Decimal `json:"pf_employee"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Net             decimal.Decimal `json:"net"`
	UnpaidDays      int             `json:"unpaid_days"`
	WorkingDays     int             `json:"working_days"`
	Warnings        []string        `json:"warnings,omitempty"`
}

type PayslipResponse struct {
	ID              string          `json:"id"`
	EmployeeCode    string          `json:"employee_code"`
	EmployeeName    string          `json:"employee_name"`
	Department      string          `json:"department,omitempty"`
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	Gross           decimal.Decimal `json:"gross"`
	UnpaidDeduction decimal.Decimal `json:"unpaid_deduction"`
	PFEmployee      decimal.Decimal `json:"pf_employee"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Net             decimal.Decimal `json:"net"`
	GeneratedAt     string          `json:"generated_at"`
}
