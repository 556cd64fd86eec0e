package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                        string
	UserID                    *string
	CompanyID                 string
	EmployeeCode              string
	FirstName                 string
	LastName                  string
	Department                string
	JoinDate                  time.Time
	BaseSalary                decimal.Decimal
	Allowances                decimal.Decimal
	PFApplicable              bool
	ProfessionalTaxApplicable bool
	Status                    Status
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Status string

const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusTerminated Status = "terminated"
)

// MonthlyGross is the employee's gross pay for a calendar-month period
// before any deduction: base salary plus fixed allowances.
func (e Employee) MonthlyGross() decimal.Decimal {
	return e.BaseSalary.Add(e.Allowances)
}
