package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
)

// CompanySource lists the companies the autorun job iterates.
type CompanySource interface {
	ListActiveCompanyIDs(ctx context.Context) ([]string, error)
}

// PayrollJobs keeps every company's current-month draft payrun materialized
// in the background, so the dashboard and review surfaces read fresh numbers
// without an explicit generate call.
type PayrollJobs struct {
	payrunService payroll.PayrunService
	companies     CompanySource
	interval      time.Duration
}

func NewPayrollJobs(payrunService payroll.PayrunService, companies CompanySource, interval time.Duration) *PayrollJobs {
	return &PayrollJobs{
		payrunService: payrunService,
		companies:     companies,
		interval:      interval,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("payroll_autorun", j.interval, j.MaterializeCurrentMonth)
}

// MaterializeCurrentMonth ensures a draft payrun exists for the current
// calendar month per company and refreshes its lines. Finalized runs are
// left untouched.
func (j *PayrollJobs) MaterializeCurrentMonth(ctx context.Context) error {
	companyIDs, err := j.companies.ListActiveCompanyIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies for payroll autorun: %w", err)
	}

	p := period.Of(time.Now())
	for _, companyID := range companyIDs {
		run, err := j.payrunService.EnsurePayrun(ctx, companyID, p)
		if err != nil {
			slog.Error("payroll autorun: ensure payrun failed", "company_id", companyID, "error", err)
			continue
		}
		if run.Status == payroll.PayrunStatusFinalized {
			continue
		}
		if _, err := j.payrunService.MaterializeLines(ctx, run); err != nil {
			slog.Error("payroll autorun: materialization failed",
				"company_id", companyID, "payrun_id", run.ID, "error", err)
		}
	}
	return nil
}
