package leave

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
)

// BalanceService computes leave consumption against an annual entitlement.
// The leave year runs Jan 1 - Dec 31; a request belongs to the year its
// from_date falls in.
type BalanceService struct {
	timeOffRepo timeoff.TimeOffRepository
	entitlement int
}

func NewBalanceService(timeOffRepo timeoff.TimeOffRepository, entitlement int) *BalanceService {
	return &BalanceService{
		timeOffRepo: timeOffRepo,
		entitlement: entitlement,
	}
}

// Balance returns used and remaining days for the employee's leave year.
// Remaining goes negative when over-consumed; it is reported, not clamped.
func (s *BalanceService) Balance(ctx context.Context, employeeID string, year int) (timeoff.Balance, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	approved, err := s.timeOffRepo.ListByEmployeeAndStatus(ctx, employeeID, timeoff.StatusApproved, yearStart, yearEnd)
	if err != nil {
		return timeoff.Balance{}, fmt.Errorf("failed to load approved time off for employee %s: %w", employeeID, err)
	}

	used := UsedDays(approved)
	return timeoff.Balance{
		EmployeeID:  employeeID,
		Year:        year,
		Entitlement: s.entitlement,
		Used:        used,
		Remaining:   s.entitlement - used,
	}, nil
}

// UsedDays sums the inclusive day spans of the given requests. Overlapping
// spans are merged first so a day covered by two approved requests is
// consumed once, not twice.
func UsedDays(requests []timeoff.TimeOff) int {
	type span struct {
		from, to time.Time
	}

	spans := make([]span, 0, len(requests))
	for _, req := range requests {
		from := dayFloor(req.FromDate)
		to := dayFloor(req.ToDate)
		if to.Before(from) {
			continue
		}
		spans = append(spans, span{from: from, to: to})
	}
	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].from.Before(spans[j].from) })

	total := 0
	current := spans[0]
	for _, sp := range spans[1:] {
		// Adjacent-but-distinct spans stay separate; only true overlap merges.
		if !sp.from.After(current.to) {
			if sp.to.After(current.to) {
				current.to = sp.to
			}
			continue
		}
		total += inclusiveDays(current.from, current.to)
		current = sp
	}
	total += inclusiveDays(current.from, current.to)
	return total
}

func inclusiveDays(from, to time.Time) int {
	return int(to.Sub(from).Hours()/24) + 1
}

func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
