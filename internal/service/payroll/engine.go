package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/audit"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
	attendanceService "github.com/hrpulse-id/payroll-backend-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

// PayrunEngine materializes payruns: one draft run per period, one line per
// active employee, denormalized totals recomputed after every line write.
type PayrunEngine struct {
	payrunRepo   payroll.PayrunRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
	aggregator   *attendanceService.AggregatorService
	rates        Rates
	parallelism  int
}

func NewPayrunEngine(
	payrunRepo payroll.PayrunRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
	aggregator *attendanceService.AggregatorService,
	rates Rates,
	parallelism int,
) *PayrunEngine {
	if parallelism <= 0 {
		parallelism = 1
	}
	return &PayrunEngine{
		payrunRepo:   payrunRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		aggregator:   aggregator,
		rates:        rates,
		parallelism:  parallelism,
	}
}

// EnsurePayrun returns the payrun for the period, creating a draft one with
// zeroed totals when absent.
//
// The check-then-create sequence is not trusted: a concurrent caller may win
// the insert between our read and write. The unique constraint on
// (company_id, period_start, period_end) is the real guarantee; a conflict on
// insert means "someone else created it" and is recovered by re-fetching.
func (e *PayrunEngine) EnsurePayrun(ctx context.Context, companyID string, p period.Period) (payroll.Payrun, error) {
	if p.End.Before(p.Start) {
		return payroll.Payrun{}, payroll.ErrInvalidPeriod
	}

	existing, err := e.payrunRepo.GetByPeriod(ctx, companyID, p.Start, p.End)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, payroll.ErrPayrunNotFound) {
		return payroll.Payrun{}, fmt.Errorf("failed to look up payrun: %w", err)
	}

	created, err := e.payrunRepo.Create(ctx, payroll.Payrun{
		CompanyID:   companyID,
		PeriodStart: p.Start,
		PeriodEnd:   p.End,
		Status:      payroll.PayrunStatusDraft,
	})
	if err == nil {
		slog.Info("payrun created",
			"company_id", companyID,
			"period_start", p.Start.Format("2006-01-02"),
			"period_end", p.End.Format("2006-01-02"),
		)
		return created, nil
	}
	if errors.Is(err, payroll.ErrPayrunExists) {
		// Lost the race; the winner's row is the payrun for this period.
		return e.payrunRepo.GetByPeriod(ctx, companyID, p.Start, p.End)
	}
	return payroll.Payrun{}, fmt.Errorf("failed to create payrun: %w", err)
}

// MaterializeLines computes and upserts one line per active employee, then
// recomputes the run totals. Lines for different employees are independent
// and computed in parallel; the totals update runs strictly after every line
// write has completed.
func (e *PayrunEngine) MaterializeLines(ctx context.Context, run payroll.Payrun) (payroll.Payrun, error) {
	if run.Status == payroll.PayrunStatusFinalized {
		return payroll.Payrun{}, payroll.ErrPayrunFinalized
	}

	employees, err := e.employeeRepo.GetActiveByCompanyID(ctx, run.CompanyID)
	if err != nil {
		return payroll.Payrun{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	p := period.Period{Start: run.PeriodStart, End: run.PeriodEnd}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(e.parallelism)

	var mu sync.Mutex
	warned := 0

	for _, emp := range employees {
		group.Go(func() error {
			line, err := e.materializeLine(groupCtx, run.ID, emp, p)
			if err != nil {
				return err
			}
			if len(line.Warnings) > 0 {
				mu.Lock()
				warned++
				mu.Unlock()
				slog.Warn("payrun line computed with warnings",
					"payrun_id", run.ID,
					"employee_id", emp.ID,
					"warnings", line.Warnings,
				)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return payroll.Payrun{}, err
	}

	slog.Info("payrun lines materialized",
		"payrun_id", run.ID,
		"employees", len(employees),
		"lines_with_warnings", warned,
	)

	return e.RecomputeTotals(ctx, run.ID, run.CompanyID)
}

func (e *PayrunEngine) materializeLine(ctx context.Context, payrunID string, emp employee.Employee, p period.Period) (payroll.PayrunLine, error) {
	summary, err := e.aggregator.SummarizePeriod(ctx, emp.ID, p)
	if err != nil {
		return payroll.PayrunLine{}, err
	}

	breakdown := Calculate(CalcInput{
		Gross:                     emp.MonthlyGross(),
		UnpaidDays:                summary.UnpaidDays,
		WorkingDays:               summary.WorkingDays,
		PFApplicable:              emp.PFApplicable,
		ProfessionalTaxApplicable: emp.ProfessionalTaxApplicable,
	}, e.rates)

	line, err := e.payrunRepo.UpsertLine(ctx, payroll.PayrunLine{
		PayrunID:        payrunID,
		EmployeeID:      emp.ID,
		Gross:           breakdown.Gross,
		UnpaidDeduction: breakdown.UnpaidDeduction,
		PFEmployee:      breakdown.PFEmployee,
		ProfessionalTax: breakdown.ProfessionalTax,
		OtherDeductions: breakdown.OtherDeductions,
		Net:             breakdown.Net,
		UnpaidDays:      summary.UnpaidDays,
		WorkingDays:     summary.WorkingDays,
		Warnings:        breakdown.Warnings,
	})
	if err != nil {
		return payroll.PayrunLine{}, fmt.Errorf("failed to upsert line for employee %s: %w", emp.ID, err)
	}
	return line, nil
}

// RecomputeTotals re-sums the run's lines and persists the result onto the
// payrun row. Must run after any line insert/update/delete; stale totals are
// a consistency bug.
func (e *PayrunEngine) RecomputeTotals(ctx context.Context, payrunID string, companyID string) (payroll.Payrun, error) {
	gross, deductions, net, err := e.payrunRepo.SumLines(ctx, payrunID)
	if err != nil {
		return payroll.Payrun{}, fmt.Errorf("failed to sum payrun lines: %w", err)
	}
	if err := e.payrunRepo.UpdateTotals(ctx, payrunID, gross, deductions, net); err != nil {
		return payroll.Payrun{}, fmt.Errorf("failed to persist payrun totals: %w", err)
	}
	return e.payrunRepo.GetByID(ctx, payrunID, companyID)
}

// Finalize performs the one-way draft -> finalized transition and records it
// in the audit log. Line mutation is rejected afterwards.
func (e *PayrunEngine) Finalize(ctx context.Context, payrunID string, companyID string, actorID string, actorRole string) (payroll.Payrun, error) {
	run, err := e.payrunRepo.GetByID(ctx, payrunID, companyID)
	if err != nil {
		return payroll.Payrun{}, err
	}
	if run.Status == payroll.PayrunStatusFinalized {
		return payroll.Payrun{}, payroll.ErrPayrunFinalized
	}

	finalized, err := e.payrunRepo.Finalize(ctx, payrunID, actorID)
	if err != nil {
		return payroll.Payrun{}, err
	}

	entry := audit.Entry{
		UserID: actorID,
		Role:   actorRole,
		Action: audit.ActionPayrunFinalized,
		Details: fmt.Sprintf("finalized payrun %s for period %s to %s (net %s)",
			finalized.ID,
			finalized.PeriodStart.Format("2006-01-02"),
			finalized.PeriodEnd.Format("2006-01-02"),
			finalized.TotalNet,
		),
	}
	if err := e.auditRepo.Append(ctx, entry); err != nil {
		// The finalization itself succeeded; a failed audit write is logged,
		// not rolled into the caller's result.
		slog.Error("failed to append audit entry for payrun finalization",
			"payrun_id", finalized.ID, "error", err)
	}

	return finalized, nil
}

// GetPayrun returns a payrun by ID.
func (e *PayrunEngine) GetPayrun(ctx context.Context, payrunID string, companyID string) (payroll.Payrun, error) {
	return e.payrunRepo.GetByID(ctx, payrunID, companyID)
}

// ListLines returns the run's lines.
func (e *PayrunEngine) ListLines(ctx context.Context, payrunID string, companyID string) ([]payroll.PayrunLine, error) {
	if _, err := e.payrunRepo.GetByID(ctx, payrunID, companyID); err != nil {
		return nil, err
	}
	return e.payrunRepo.ListLines(ctx, payrunID)
}

// GetEmployeeLine returns one employee's line in the run. Employees that are
// not part of the run, for example joined after materialization or inactive
// during the period, get ErrEmployeeNotInPayrun.
func (e *PayrunEngine) GetEmployeeLine(ctx context.Context, payrunID string, companyID string, employeeID string) (payroll.PayrunLine, error) {
	if _, err := e.payrunRepo.GetByID(ctx, payrunID, companyID); err != nil {
		return payroll.PayrunLine{}, err
	}
	return e.payrunRepo.GetLineByEmployee(ctx, payrunID, employeeID)
}

var _ payroll.PayrunService = (*PayrunEngine)(nil)
