package payroll

import (
	"context"

	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
)

// PayrunService orchestrates payrun materialization for a period.
type PayrunService interface {
	// EnsurePayrun returns the payrun for the period, creating a draft one
	// with zeroed totals when absent. Safe under concurrent callers: exactly
	// one payrun row exists per period afterwards.
	EnsurePayrun(ctx context.Context, companyID string, p period.Period) (Payrun, error)

	// MaterializeLines computes one line per active employee and recomputes
	// the run totals. Rejects finalized runs. Re-invocation over unchanged
	// attendance input produces identical line values.
	MaterializeLines(ctx context.Context, run Payrun) (Payrun, error)

	// RecomputeTotals re-sums the run's lines onto the payrun row.
	RecomputeTotals(ctx context.Context, payrunID string, companyID string) (Payrun, error)

	// Finalize performs the one-way draft -> finalized transition and writes
	// an audit record.
	Finalize(ctx context.Context, payrunID string, companyID string, actorID string, actorRole string) (Payrun, error)

	GetPayrun(ctx context.Context, payrunID string, companyID string) (Payrun, error)
	ListLines(ctx context.Context, payrunID string, companyID string) ([]PayrunLine, error)

	// GetEmployeeLine returns one employee's line in the run, rejecting
	// employees that are not part of it with ErrEmployeeNotInPayrun.
	GetEmployeeLine(ctx context.Context, payrunID string, companyID string, employeeID string) (PayrunLine, error)
}

// PayslipService produces and serves immutable payslip snapshots.
type PayslipService interface {
	// Generate snapshots a line into a payslip. The owning payrun must be
	// finalized; otherwise the call is rejected. Generating twice for the
	// same line returns the stored snapshot.
	Generate(ctx context.Context, lineID string, companyID string) (Payslip, error)

	// GetByID returns the stored snapshot, scoped to the requesting company.
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)

	// RenderPDF renders the stored snapshot as a PDF document, scoped to the
	// requesting company.
	RenderPDF(ctx context.Context, id string, companyID string) ([]byte, error)
}
