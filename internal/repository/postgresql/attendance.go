package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/attendance"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// Record implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Record(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, company_id, date, status, clock_in, clock_out, work_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, company_id, date, status, clock_in, clock_out, work_minutes,
			created_at, updated_at
	`

	var created attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.CompanyID, att.Date, att.Status, att.ClockIn, att.ClockOut, att.WorkMinutes,
	).Scan(
		&created.ID, &created.EmployeeID, &created.CompanyID, &created.Date, &created.Status,
		&created.ClockIn, &created.ClockOut, &created.WorkMinutes,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendances_employee_date") {
			return attendance.Attendance{}, attendance.ErrDuplicateDate
		}
		return attendance.Attendance{}, fmt.Errorf("failed to record attendance: %w", err)
	}
	return created, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, date, status, clock_in, clock_out, work_minutes,
			created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date, &att.Status,
			&att.ClockIn, &att.ClockOut, &att.WorkMinutes,
			&att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, att)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
