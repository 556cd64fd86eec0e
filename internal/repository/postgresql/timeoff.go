package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeOffRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRepository(db *database.DB) timeoff.TimeOffRepository {
	return &timeOffRepositoryImpl{db: db}
}

// Create implements timeoff.TimeOffRepository.
func (r *timeOffRepositoryImpl) Create(ctx context.Context, req timeoff.TimeOff) (timeoff.TimeOff, error) {
	if req.ToDate.Before(req.FromDate) {
		return timeoff.TimeOff{}, timeoff.ErrInvalidSpan
	}

	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_off_requests (employee_id, company_id, type, from_date, to_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, employee_id, company_id, type, from_date, to_date, status, reason,
			created_at, updated_at
	`

	var created timeoff.TimeOff
	err := q.QueryRow(ctx, query,
		req.EmployeeID, req.CompanyID, req.Type, req.FromDate, req.ToDate,
		timeoff.StatusPending, req.Reason,
	).Scan(
		&created.ID, &created.EmployeeID, &created.CompanyID, &created.Type,
		&created.FromDate, &created.ToDate, &created.Status, &created.Reason,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return timeoff.TimeOff{}, fmt.Errorf("failed to create time off request: %w", err)
	}
	return created, nil
}

// ListByEmployeeAndStatus implements timeoff.TimeOffRepository.
func (r *timeOffRepositoryImpl) ListByEmployeeAndStatus(ctx context.Context, employeeID string, status timeoff.Status, from, to time.Time) ([]timeoff.TimeOff, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, company_id, type, from_date, to_date, status, reason,
			created_at, updated_at
		FROM time_off_requests
		WHERE employee_id = $1 AND status = $2 AND from_date >= $3 AND from_date <= $4
		ORDER BY from_date
	`

	rows, err := q.Query(ctx, query, employeeID, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time off requests: %w", err)
	}
	defer rows.Close()

	var requests []timeoff.TimeOff
	for rows.Next() {
		var req timeoff.TimeOff
		err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.CompanyID, &req.Type,
			&req.FromDate, &req.ToDate, &req.Status, &req.Reason,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

// SetStatus implements timeoff.TimeOffRepository.
func (r *timeOffRepositoryImpl) SetStatus(ctx context.Context, id string, status timeoff.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timeoff.ErrTimeOffNotFound
		}
		return fmt.Errorf("failed to update time off status: %w", err)
	}
	return nil
}
