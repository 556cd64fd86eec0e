package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrunStatus enum
type PayrunStatus string

const (
	PayrunStatusDraft     PayrunStatus = "draft"
	PayrunStatusFinalized PayrunStatus = "finalized"
)

// Payrun is one payroll processing run scoped to a calendar-month period.
// At most one payrun exists per (PeriodStart, PeriodEnd); the totals are
// denormalized and must always equal the sums over the run's lines.
type Payrun struct {
	ID              string
	CompanyID       string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Status          PayrunStatus
	TotalGross      decimal.Decimal
	TotalDeductions decimal.Decimal
	TotalNet        decimal.Decimal
	FinalizedAt     *time.Time
	FinalizedBy     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PayrunLine is one employee's computed result within a payrun, unique per
// (PayrunID, EmployeeID).
// Invariant: Net = Gross - (UnpaidDeduction + PFEmployee + ProfessionalTax + OtherDeductions).
type PayrunLine struct {
	ID              string
	PayrunID        string
	EmployeeID      string
	Gross           decimal.Decimal
	UnpaidDeduction decimal.Decimal
	PFEmployee      decimal.Decimal
	ProfessionalTax decimal.Decimal
	OtherDeductions decimal.Decimal
	Net             decimal.Decimal
	UnpaidDays      int
	WorkingDays     int
	Warnings        []string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// TotalDeductions is the sum of every deduction component on the line.
func (l PayrunLine) TotalDeductions() decimal.Decimal {
	return l.UnpaidDeduction.Add(l.PFEmployee).Add(l.ProfessionalTax).Add(l.OtherDeductions)
}

// Line warning keys.
const (
	WarningNegativeNet    = "negative_net"
	WarningNoAttendance   = "no_attendance"
	WarningZeroWorkingDay = "zero_working_days"
)

// Payslip is the immutable employee-facing snapshot of a finalized payrun
// line. Every field is copied at generation time; the slip is never
// re-derived from the live line afterwards.
type Payslip struct {
	ID              string
	PayrunLineID    string
	PayrunID        string
	EmployeeID      string
	EmployeeCode    string
	EmployeeName    string
	Department      string
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Gross           decimal.Decimal
	UnpaidDeduction decimal.Decimal
	PFEmployee      decimal.Decimal
	ProfessionalTax decimal.Decimal
	OtherDeductions decimal.Decimal
	Net             decimal.Decimal
	GeneratedAt     time.Time
}

// Breakdown is the output of the deduction calculator: every monetary
// component rounded to two decimal places exactly once.
type Breakdown struct {
	Gross           decimal.Decimal
	UnpaidDeduction decimal.Decimal
	PFEmployee      decimal.Decimal
	ProfessionalTax decimal.Decimal
	OtherDeductions decimal.Decimal
	Net             decimal.Decimal
	Warnings        []string
}
