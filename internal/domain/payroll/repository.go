package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrunRepository defines data access methods for payruns, lines and
// payslips. The period and line uniqueness guarantees are enforced by the
// database, not by in-process checks: Create must surface a unique-constraint
// violation as ErrPayrunExists so callers can re-fetch.
type PayrunRepository interface {
	// Payruns
	Create(ctx context.Context, run Payrun) (Payrun, error)
	GetByID(ctx context.Context, id string, companyID string) (Payrun, error)
	GetByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (Payrun, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Payrun, error)

	// UpdateTotals persists recomputed totals onto the payrun row.
	UpdateTotals(ctx context.Context, payrunID string, gross, deductions, net decimal.Decimal) error

	// Finalize performs the one-way draft -> finalized transition. It must
	// only succeed when the run is still draft; an already-finalized run maps
	// to ErrPayrunFinalized.
	Finalize(ctx context.Context, payrunID string, finalizedBy string) (Payrun, error)

	// Lines

	// UpsertLine writes one line of a draft run. The draft-status guard lives
	// in the statement itself; writing into a finalized run maps to
	// ErrPayrunFinalized regardless of what status the caller last observed.
	UpsertLine(ctx context.Context, line PayrunLine) (PayrunLine, error)
	GetLineByID(ctx context.Context, lineID string) (PayrunLine, error)

	// GetLineByEmployee returns the employee's line in the run; an employee
	// with no line maps to ErrEmployeeNotInPayrun.
	GetLineByEmployee(ctx context.Context, payrunID string, employeeID string) (PayrunLine, error)
	ListLines(ctx context.Context, payrunID string) ([]PayrunLine, error)

	// SumLines computes gross/deductions/net over the run's lines in a single
	// aggregate query. Empty runs yield zeros.
	SumLines(ctx context.Context, payrunID string) (gross, deductions, net decimal.Decimal, err error)

	// Payslips
	CreatePayslip(ctx context.Context, slip Payslip) (Payslip, error)
	GetPayslipByLineID(ctx context.Context, lineID string) (Payslip, error)

	// GetPayslipByID is scoped to the company owning the payrun; a slip
	// belonging to another tenant maps to ErrPayslipNotFound.
	GetPayslipByID(ctx context.Context, id string, companyID string) (Payslip, error)
}
