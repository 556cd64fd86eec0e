package attendance

import "time"

type Attendance struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	CompanyID   string     `json:"-"`
	Date        time.Time  `json:"date"`
	Status      Status     `json:"status"`
	ClockIn     *time.Time `json:"clock_in,omitempty"`
	ClockOut    *time.Time `json:"clock_out,omitempty"`
	WorkMinutes *int       `json:"work_minutes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
)

// PeriodSummary is the reduction of one employee's attendance rows over a
// payroll period. UnpaidDays counts working days with no attendance row or
// an explicit absent status.
type PeriodSummary struct {
	EmployeeID  string `json:"employee_id"`
	PresentDays int    `json:"present_days"`
	AbsentDays  int    `json:"absent_days"`
	LateDays    int    `json:"late_days"`
	HalfDays    int    `json:"half_days"`
	WorkingDays int    `json:"working_days"`
	UnpaidDays  int    `json:"unpaid_days"`
}
