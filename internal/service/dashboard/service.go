package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/dashboard"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
)

// Service assembles the read-only dashboard rollup. All queries are pure
// reads; an empty company yields a zeroed overview, never an error.
type Service struct {
	dashboardRepo dashboard.DashboardRepository
	clock         func() time.Time
}

func NewService(dashboardRepo dashboard.DashboardRepository) *Service {
	return &Service{
		dashboardRepo: dashboardRepo,
		clock:         time.Now,
	}
}

// Overview builds the rollup for the calendar month containing now: the
// attendance distribution and rate, employees on leave today, headcount by
// department, and the month's payroll totals.
func (s *Service) Overview(ctx context.Context, companyID string) (dashboard.Overview, error) {
	now := s.clock().UTC()
	p := period.Of(now)

	stats, err := s.dashboardRepo.GetAttendanceStats(ctx, companyID, p.Start, p.End)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to load attendance stats: %w", err)
	}

	activeLeave, err := s.dashboardRepo.CountActiveLeave(ctx, companyID, now)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to count active leave: %w", err)
	}

	departments, err := s.dashboardRepo.GetDepartmentHeadcounts(ctx, companyID)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to load department headcounts: %w", err)
	}

	payrollTotals, err := s.dashboardRepo.GetPayrollTotals(ctx, companyID, p.Start, p.End)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to load payroll totals: %w", err)
	}

	activeEmployees, err := s.dashboardRepo.CountActiveEmployees(ctx, companyID)
	if err != nil {
		return dashboard.Overview{}, fmt.Errorf("failed to count active employees: %w", err)
	}

	return dashboard.Overview{
		AttendanceRate:  AttendanceRate(stats),
		Attendance:      stats,
		ActiveLeave:     activeLeave,
		Departments:     departments,
		Payroll:         payrollTotals,
		ActiveEmployees: activeEmployees,
	}, nil
}

// AttendanceRate is the fraction of recorded days counted as attended:
// present and late both count, absent and half-day do not. A period with no
// records has rate 0, not a division error.
func AttendanceRate(stats dashboard.AttendanceStats) float64 {
	if stats.Total == 0 {
		return 0
	}
	return float64(stats.Present+stats.Late) / float64(stats.Total)
}
