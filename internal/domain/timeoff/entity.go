package timeoff

import "time"

type TimeOff struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"-"`
	Type       string    `json:"type"`
	FromDate   time.Time `json:"from_date"`
	ToDate     time.Time `json:"to_date"`
	Status     Status    `json:"status"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Days returns the inclusive span length of the request in calendar days.
func (t TimeOff) Days() int {
	from := midnight(t.FromDate)
	to := midnight(t.ToDate)
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// Contains reports whether the span covers the given day.
func (t TimeOff) Contains(day time.Time) bool {
	d := midnight(day)
	return !d.Before(midnight(t.FromDate)) && !d.After(midnight(t.ToDate))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Balance is an employee's leave accounting for one leave year.
// Remaining may be negative when the entitlement is over-consumed; it is
// reported as-is, never clamped.
type Balance struct {
	EmployeeID  string `json:"employee_id"`
	Year        int    `json:"year"`
	Entitlement int    `json:"entitlement"`
	Used        int    `json:"used"`
	Remaining   int    `json:"remaining"`
}
