package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/dashboard"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetAttendanceStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetAttendanceStats(ctx context.Context, companyID string, from, to time.Time) (dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'half_day'),
			COUNT(*)
		FROM attendances
		WHERE company_id = $1 AND date >= $2 AND date <= $3
	`

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, companyID, from, to).Scan(
		&stats.Present, &stats.Absent, &stats.Late, &stats.HalfDay, &stats.Total,
	)
	if err != nil {
		return dashboard.AttendanceStats{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}
	return stats, nil
}

// CountActiveLeave implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveLeave(ctx context.Context, companyID string, day time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM time_off_requests
		WHERE company_id = $1 AND status IN ($2, $3) AND from_date <= $4 AND to_date >= $4
	`

	var count int
	err := q.QueryRow(ctx, query, companyID, timeoff.StatusPending, timeoff.StatusApproved, day).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active leave: %w", err)
	}
	return count, nil
}

// GetDepartmentHeadcounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetDepartmentHeadcounts(ctx context.Context, companyID string) ([]dashboard.DepartmentHeadcount, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department, COUNT(*)
		FROM employees
		WHERE company_id = $1 AND status = $2
		GROUP BY department
		ORDER BY department
	`

	rows, err := q.Query(ctx, query, companyID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get department headcounts: %w", err)
	}
	defer rows.Close()

	var counts []dashboard.DepartmentHeadcount
	for rows.Next() {
		var hc dashboard.DepartmentHeadcount
		if err := rows.Scan(&hc.Department, &hc.Headcount); err != nil {
			return nil, err
		}
		counts = append(counts, hc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// GetPayrollTotals implements dashboard.DashboardRepository. Zeros when no
// payrun exists for the period.
func (r *dashboardRepositoryImpl) GetPayrollTotals(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (dashboard.PayrollTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(pl.gross), 0),
			COALESCE(SUM(pl.unpaid_deduction + pl.pf_employee + pl.professional_tax + pl.other_deductions), 0),
			COALESCE(SUM(pl.net), 0),
			COUNT(pl.id)
		FROM payruns p
		LEFT JOIN payrun_lines pl ON pl.payrun_id = p.id
		WHERE p.company_id = $1 AND p.period_start = $2 AND p.period_end = $3
	`

	var totals dashboard.PayrollTotals
	err := q.QueryRow(ctx, query, companyID, periodStart, periodEnd).Scan(
		&totals.TotalGross, &totals.TotalDeductions, &totals.TotalNet, &totals.LineCount,
	)
	if err != nil {
		return dashboard.PayrollTotals{}, fmt.Errorf("failed to get payroll totals: %w", err)
	}
	return totals, nil
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context, companyID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM employees WHERE company_id = $1 AND status = $2`,
		companyID, employee.StatusActive,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return count, nil
}
