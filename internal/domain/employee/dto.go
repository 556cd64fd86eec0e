package employee

import (
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ProvisionEmployeeRequest struct {
	CompanyID                 string          `json:"-"`
	CompanyCode               string          `json:"company_code"`
	FirstName                 string          `json:"first_name"`
	LastName                  string          `json:"last_name"`
	Department                string          `json:"department"`
	JoinDate                  string          `json:"join_date"`
	BaseSalary                decimal.Decimal `json:"base_salary"`
	Allowances                decimal.Decimal `json:"allowances"`
	PFApplicable              bool            `json:"pf_applicable"`
	ProfessionalTaxApplicable bool            `json:"professional_tax_applicable"`
}

func (r *ProvisionEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "is required"})
	} else if !validator.IsValidCompanyCode(r.CompanyCode) {
		errs = append(errs, validator.ValidationError{Field: "company_code", Message: "must be 2-5 uppercase letters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}
	if r.Allowances.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allowances", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Department   string          `json:"department"`
	JoinDate     string          `json:"join_date"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Allowances   decimal.Decimal `json:"allowances"`
	Status       string          `json:"status"`
}
