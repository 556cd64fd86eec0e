package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/period"
)

// AggregatorService reduces an employee's attendance rows over a payroll
// period into per-status counts and the unpaid-day count the deduction
// calculator consumes.
type AggregatorService struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewAggregatorService(attendanceRepo attendance.AttendanceRepository) *AggregatorService {
	return &AggregatorService{attendanceRepo: attendanceRepo}
}

// SummarizePeriod loads the employee's rows for the period and reduces them.
// The result is a pure function of the stored rows: re-running over unchanged
// rows yields identical counts.
func (s *AggregatorService) SummarizePeriod(ctx context.Context, employeeID string, p period.Period) (attendance.PeriodSummary, error) {
	rows, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, p.Start, p.End)
	if err != nil {
		return attendance.PeriodSummary{}, fmt.Errorf("failed to load attendance for employee %s: %w", employeeID, err)
	}
	summary := Summarize(employeeID, p, rows)
	return summary, nil
}

// Summarize reduces attendance rows into a period summary. Rows outside the
// period are ignored; at most one row per date is assumed (enforced by the
// store's uniqueness on (employee_id, date)).
//
// UnpaidDays counts working days with either no row at all or an explicit
// absent status. Weekend rows never contribute to UnpaidDays.
func Summarize(employeeID string, p period.Period, rows []attendance.Attendance) attendance.PeriodSummary {
	summary := attendance.PeriodSummary{
		EmployeeID:  employeeID,
		WorkingDays: p.WorkingDays(),
	}

	byDay := make(map[string]attendance.Status, len(rows))
	for _, row := range rows {
		if !p.Contains(row.Date) {
			continue
		}
		switch row.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusLate:
			summary.LateDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
		}
		byDay[dayKey(row.Date)] = row.Status
	}

	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if !period.IsWorkingDay(d) {
			continue
		}
		status, ok := byDay[dayKey(d)]
		if !ok || status == attendance.StatusAbsent {
			summary.UnpaidDays++
		}
	}

	return summary
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
