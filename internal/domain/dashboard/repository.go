package dashboard

import (
	"context"
	"time"
)

// DashboardRepository serves the read-only rollup queries. Every method must
// tolerate empty result sets and return zero values instead of failing.
type DashboardRepository interface {
	// GetAttendanceStats returns the status distribution for dates in
	// [from, to] inclusive.
	GetAttendanceStats(ctx context.Context, companyID string, from, to time.Time) (AttendanceStats, error)

	// CountActiveLeave counts pending/approved time-off spans containing the
	// given day.
	CountActiveLeave(ctx context.Context, companyID string, day time.Time) (int, error)

	// GetDepartmentHeadcounts groups active employees by department.
	GetDepartmentHeadcounts(ctx context.Context, companyID string) ([]DepartmentHeadcount, error)

	// GetPayrollTotals sums the payrun lines for the period; zeros when no
	// payrun exists.
	GetPayrollTotals(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (PayrollTotals, error)

	// CountActiveEmployees counts employees in active status.
	CountActiveEmployees(ctx context.Context, companyID string) (int, error)
}
