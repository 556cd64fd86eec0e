package payroll

import (
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the fixed-point scale for all monetary results.
const moneyPlaces = 2

// Rates holds the statutory deduction parameters the calculator applies.
type Rates struct {
	// PFRate is the employee provident-fund fraction of gross (e.g. 0.12).
	PFRate decimal.Decimal
	// ProfessionalTax is the flat per-period amount.
	ProfessionalTax decimal.Decimal
}

// CalcInput is everything the deduction calculator needs for one employee
// and period. Gross is the period gross before deductions; when the period
// is a calendar month this is the monthly salary plus allowances.
type CalcInput struct {
	Gross                     decimal.Decimal
	UnpaidDays                int
	WorkingDays               int
	PFApplicable              bool
	ProfessionalTaxApplicable bool
	// OtherDeductions passes through unchanged (e.g. loan recovery).
	OtherDeductions decimal.Decimal
}

// Calculate maps a CalcInput to a deduction breakdown. It is a pure
// function: identical input always yields an identical breakdown.
//
// Each monetary component is rounded to two decimal places (half up) exactly
// once, and net is derived from the rounded components, so
// net = gross - (unpaid + pf + tax + other) holds exactly and repeated
// recomputation cannot drift.
func Calculate(in CalcInput, rates Rates) payroll.Breakdown {
	gross := in.Gross.Round(moneyPlaces)

	unpaid := decimal.Zero
	if in.WorkingDays > 0 && in.UnpaidDays > 0 {
		unpaid = in.Gross.
			Mul(decimal.NewFromInt(int64(in.UnpaidDays))).
			Div(decimal.NewFromInt(int64(in.WorkingDays))).
			Round(moneyPlaces)
	}

	pf := decimal.Zero
	if in.PFApplicable {
		pf = in.Gross.Mul(rates.PFRate).Round(moneyPlaces)
	}

	tax := decimal.Zero
	if in.ProfessionalTaxApplicable {
		tax = rates.ProfessionalTax.Round(moneyPlaces)
	}

	other := in.OtherDeductions.Round(moneyPlaces)

	net := gross.Sub(unpaid).Sub(pf).Sub(tax).Sub(other)

	breakdown := payroll.Breakdown{
		Gross:           gross,
		UnpaidDeduction: unpaid,
		PFEmployee:      pf,
		ProfessionalTax: tax,
		OtherDeductions: other,
		Net:             net,
	}

	if in.WorkingDays <= 0 {
		breakdown.Warnings = append(breakdown.Warnings, payroll.WarningZeroWorkingDay)
	}
	if in.WorkingDays > 0 && in.UnpaidDays >= in.WorkingDays {
		breakdown.Warnings = append(breakdown.Warnings, payroll.WarningNoAttendance)
	}
	if net.IsNegative() {
		breakdown.Warnings = append(breakdown.Warnings, payroll.WarningNegativeNet)
	}

	return breakdown
}
