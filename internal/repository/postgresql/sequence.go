package postgresql

import (
	"context"
	"fmt"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
)

type codeSequenceRepositoryImpl struct {
	db *database.DB
}

func NewCodeSequenceRepository(db *database.DB) employee.CodeSequenceRepository {
	return &codeSequenceRepositoryImpl{db: db}
}

// NextSerial implements employee.CodeSequenceRepository.
//
// The counter lives in a dedicated row per (company_code, year) and the
// increment happens inside the database, so concurrent callers serialize on
// the row and each receives a distinct serial. Counting existing employee
// rows instead would race: two concurrent provisions could both observe N
// and issue N+1 twice.
func (r *codeSequenceRepositoryImpl) NextSerial(ctx context.Context, companyCode string, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_code_sequences (company_code, year, serial)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_code, year)
		DO UPDATE SET serial = employee_code_sequences.serial + 1
		RETURNING serial
	`

	var serial int
	if err := q.QueryRow(ctx, query, companyCode, year).Scan(&serial); err != nil {
		return 0, fmt.Errorf("failed to advance code sequence for %s/%d: %w", companyCode, year, err)
	}
	return serial, nil
}
