package period

import "time"

// Period is an inclusive calendar-day range used to scope attendance,
// leave and payrun computation. Boundaries are normalized to midnight UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// Of returns the calendar-month period containing the reference instant:
// the first and last day of that instant's month, inclusive.
func Of(t time.Time) Period {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}
}

// OfMonth returns the period for an explicit year/month pair.
func OfMonth(year int, month time.Month) Period {
	return Of(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// Days returns the inclusive number of calendar days in the period.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// WorkingDays returns the number of weekdays in the period.
// Saturdays and Sundays are excluded.
func (p Period) WorkingDays() int {
	count := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// Contains reports whether the given day falls inside the period.
// The time-of-day component is ignored.
func (p Period) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Year returns the period's calendar year.
func (p Period) Year() int {
	return p.Start.Year()
}

// Month returns the period's calendar month.
func (p Period) Month() time.Month {
	return p.Start.Month()
}

// IsWorkingDay reports whether a day is a weekday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
