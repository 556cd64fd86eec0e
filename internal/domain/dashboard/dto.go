package dashboard

import "github.com/shopspring/decimal"

// AttendanceStats is the status distribution over a period.
type AttendanceStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	HalfDay int `json:"half_day"`
	Total   int `json:"total"`
}

// DepartmentHeadcount is one group-by row of active employees.
type DepartmentHeadcount struct {
	Department string `json:"department"`
	Headcount  int    `json:"headcount"`
}

// PayrollTotals sums gross/deductions/net over the lines of a period's
// payrun. Zeros when no payrun exists.
type PayrollTotals struct {
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
	LineCount       int             `json:"line_count"`
}

// Overview is the read-only rollup consumed by presentation layers.
type Overview struct {
	AttendanceRate  float64               `json:"attendance_rate"`
	Attendance      AttendanceStats       `json:"attendance"`
	ActiveLeave     int                   `json:"active_leave"`
	Departments     []DepartmentHeadcount `json:"departments"`
	Payroll         PayrollTotals         `json:"payroll"`
	ActiveEmployees int                   `json:"active_employees"`
}
