package period

import (
	"testing"
	"time"
)

func TestOf(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantStart string
		wantEnd   string
		wantDays  int
	}{
		{time.Date(2024, time.January, 15, 13, 45, 0, 0, time.UTC), "2024-01-01", "2024-01-31", 31},
		{time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29", 29},
		{time.Date(2023, time.February, 28, 23, 59, 59, 0, time.UTC), "2023-02-01", "2023-02-28", 28},
		{time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), "2024-12-01", "2024-12-31", 31},
	}
	for _, c := range cases {
		p := Of(c.ref)
		if got := p.Start.Format("2006-01-02"); got != c.wantStart {
			t.Errorf("Of(%v).Start = %s, want %s", c.ref, got, c.wantStart)
		}
		if got := p.End.Format("2006-01-02"); got != c.wantEnd {
			t.Errorf("Of(%v).End = %s, want %s", c.ref, got, c.wantEnd)
		}
		if got := p.Days(); got != c.wantDays {
			t.Errorf("Of(%v).Days() = %d, want %d", c.ref, got, c.wantDays)
		}
		if h, m, s := p.Start.Clock(); h != 0 || m != 0 || s != 0 {
			t.Errorf("Of(%v).Start not at midnight: %v", c.ref, p.Start)
		}
	}
}

func TestWorkingDays(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 23},
		{2024, time.February, 21},
		{2024, time.November, 21},
		{2023, time.April, 20},
	}
	for _, c := range cases {
		got := OfMonth(c.year, c.month).WorkingDays()
		if got != c.want {
			t.Errorf("OfMonth(%d, %v).WorkingDays() = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestContains(t *testing.T) {
	p := OfMonth(2024, time.March)
	if !p.Contains(time.Date(2024, time.March, 31, 18, 30, 0, 0, time.UTC)) {
		t.Error("period should contain the last day regardless of time of day")
	}
	if !p.Contains(p.Start) {
		t.Error("period should contain its start")
	}
	if p.Contains(time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("period should not contain the next month's first day")
	}
}

func TestIsWorkingDay(t *testing.T) {
	if IsWorkingDay(time.Date(2024, time.January, 6, 0, 0, 0, 0, time.UTC)) {
		t.Error("Saturday reported as working day")
	}
	if IsWorkingDay(time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)) {
		t.Error("Sunday reported as working day")
	}
	if !IsWorkingDay(time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)) {
		t.Error("Monday not reported as working day")
	}
}
