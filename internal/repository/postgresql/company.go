package postgresql

import (
	"context"
	"fmt"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
)

// CompanySourceRepository lists companies with at least one active employee.
// Used by background jobs that iterate every payroll population.
type CompanySourceRepository struct {
	db *database.DB
}

func NewCompanySourceRepository(db *database.DB) *CompanySourceRepository {
	return &CompanySourceRepository{db: db}
}

func (r *CompanySourceRepository) ListActiveCompanyIDs(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT company_id
		FROM employees
		WHERE status = $1
		ORDER BY company_id
	`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active company ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
