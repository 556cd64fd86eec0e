package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Record inserts one row per (employee, date). A second record for the
	// same date maps to ErrDuplicateDate.
	Record(ctx context.Context, att Attendance) (Attendance, error)

	// ListByEmployeeAndRange returns rows with date in [from, to] inclusive,
	// ordered by date.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
