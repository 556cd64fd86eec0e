package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrunRepositoryImpl struct {
	db *database.DB
}

func NewPayrunRepository(db *database.DB) payroll.PayrunRepository {
	return &payrunRepositoryImpl{db: db}
}

// ========== PAYRUNS ==========

// Create implements payroll.PayrunRepository. The unique constraint on
// (company_id, period_start, period_end) is the period-uniqueness guarantee;
// a violation surfaces as ErrPayrunExists so the caller can re-fetch.
func (r *payrunRepositoryImpl) Create(ctx context.Context, run payroll.Payrun) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payruns (company_id, period_start, period_end, status, total_gross, total_deductions, total_net)
		VALUES ($1, $2, $3, $4, 0, 0, 0)
		RETURNING id, company_id, period_start, period_end, status,
			total_gross, total_deductions, total_net, finalized_at, finalized_by,
			created_at, updated_at
	`

	var created payroll.Payrun
	err := q.QueryRow(ctx, query,
		run.CompanyID, run.PeriodStart, run.PeriodEnd, payroll.PayrunStatusDraft,
	).Scan(
		&created.ID, &created.CompanyID, &created.PeriodStart, &created.PeriodEnd, &created.Status,
		&created.TotalGross, &created.TotalDeductions, &created.TotalNet,
		&created.FinalizedAt, &created.FinalizedBy,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payruns_period") {
			return payroll.Payrun{}, payroll.ErrPayrunExists
		}
		return payroll.Payrun{}, fmt.Errorf("failed to create payrun: %w", err)
	}
	return created, nil
}

// GetByID implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_start, period_end, status,
			total_gross, total_deductions, total_net, finalized_at, finalized_by,
			created_at, updated_at
		FROM payruns
		WHERE id = $1 AND company_id = $2
	`

	var run payroll.Payrun
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&run.ID, &run.CompanyID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet,
		&run.FinalizedAt, &run.FinalizedBy,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to get payrun: %w", err)
	}
	return run, nil
}

// GetByPeriod implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) GetByPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_start, period_end, status,
			total_gross, total_deductions, total_net, finalized_at, finalized_by,
			created_at, updated_at
		FROM payruns
		WHERE company_id = $1 AND period_start = $2 AND period_end = $3
	`

	var run payroll.Payrun
	err := q.QueryRow(ctx, query, companyID, periodStart, periodEnd).Scan(
		&run.ID, &run.CompanyID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet,
		&run.FinalizedAt, &run.FinalizedBy,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to get payrun by period: %w", err)
	}
	return run, nil
}

// ListByCompany implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_start, period_end, status,
			total_gross, total_deductions, total_net, finalized_at, finalized_by,
			created_at, updated_at
		FROM payruns
		WHERE company_id = $1
		ORDER BY period_start DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list payruns: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Payrun
	for rows.Next() {
		var run payroll.Payrun
		err := rows.Scan(
			&run.ID, &run.CompanyID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
			&run.TotalGross, &run.TotalDeductions, &run.TotalNet,
			&run.FinalizedAt, &run.FinalizedBy,
			&run.CreatedAt, &run.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// UpdateTotals implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) UpdateTotals(ctx context.Context, payrunID string, gross, deductions, net decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payruns
		SET total_gross = $1, total_deductions = $2, total_net = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, gross, deductions, net, payrunID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrunNotFound
		}
		return fmt.Errorf("failed to update payrun totals: %w", err)
	}
	return nil
}

// Finalize implements payroll.PayrunRepository. The WHERE status = 'draft'
// guard makes the transition one-way at the database level: a second caller
// matches no row and gets ErrPayrunFinalized.
func (r *payrunRepositoryImpl) Finalize(ctx context.Context, payrunID string, finalizedBy string) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payruns
		SET status = $1, finalized_at = NOW(), finalized_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING id, company_id, period_start, period_end, status,
			total_gross, total_deductions, total_net, finalized_at, finalized_by,
			created_at, updated_at
	`

	var run payroll.Payrun
	err := q.QueryRow(ctx, query,
		payroll.PayrunStatusFinalized, finalizedBy, payrunID, payroll.PayrunStatusDraft,
	).Scan(
		&run.ID, &run.CompanyID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&run.TotalGross, &run.TotalDeductions, &run.TotalNet,
		&run.FinalizedAt, &run.FinalizedBy,
		&run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Either missing or already finalized; an existence check
			// distinguishes the two.
			var exists bool
			if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payruns WHERE id = $1)`, payrunID).Scan(&exists); checkErr == nil && exists {
				return payroll.Payrun{}, payroll.ErrPayrunFinalized
			}
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to finalize payrun: %w", err)
	}
	return run, nil
}

// ========== LINES ==========

// UpsertLine implements payroll.PayrunRepository. Re-materialization updates
// the existing (payrun_id, employee_id) row in place. The insert selects the
// payrun under a row lock and only while it is still draft, so a finalization
// that lands between the caller's status read and this write cannot be
// overwritten: the statement matches no row and maps to ErrPayrunFinalized.
func (r *payrunRepositoryImpl) UpsertLine(ctx context.Context, line payroll.PayrunLine) (payroll.PayrunLine, error) {
	q := GetQuerier(ctx, r.db)

	warningsJSON, err := json.Marshal(line.Warnings)
	if err != nil {
		return payroll.PayrunLine{}, fmt.Errorf("failed to marshal line warnings: %w", err)
	}

	query := `
		WITH run AS (
			SELECT id FROM payruns WHERE id = $1 AND status = $12 FOR UPDATE
		)
		INSERT INTO payrun_lines (
			payrun_id, employee_id, gross, unpaid_deduction, pf_employee,
			professional_tax, other_deductions, net, unpaid_days, working_days, warnings
		)
		SELECT run.id, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11 FROM run
		ON CONFLICT (payrun_id, employee_id)
		DO UPDATE SET
			gross = EXCLUDED.gross,
			unpaid_deduction = EXCLUDED.unpaid_deduction,
			pf_employee = EXCLUDED.pf_employee,
			professional_tax = EXCLUDED.professional_tax,
			other_deductions = EXCLUDED.other_deductions,
			net = EXCLUDED.net,
			unpaid_days = EXCLUDED.unpaid_days,
			working_days = EXCLUDED.working_days,
			warnings = EXCLUDED.warnings,
			updated_at = NOW()
		RETURNING id, payrun_id, employee_id, gross, unpaid_deduction, pf_employee,
			professional_tax, other_deductions, net, unpaid_days, working_days, warnings,
			created_at, updated_at
	`

	var stored payroll.PayrunLine
	var warningsBytes []byte
	err = q.QueryRow(ctx, query,
		line.PayrunID, line.EmployeeID, line.Gross, line.UnpaidDeduction, line.PFEmployee,
		line.ProfessionalTax, line.OtherDeductions, line.Net,
		line.UnpaidDays, line.WorkingDays, warningsJSON,
		payroll.PayrunStatusDraft,
	).Scan(
		&stored.ID, &stored.PayrunID, &stored.EmployeeID, &stored.Gross, &stored.UnpaidDeduction,
		&stored.PFEmployee, &stored.ProfessionalTax, &stored.OtherDeductions, &stored.Net,
		&stored.UnpaidDays, &stored.WorkingDays, &warningsBytes,
		&stored.CreatedAt, &stored.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			// Either missing or no longer draft; an existence check
			// distinguishes the two, as in Finalize.
			var exists bool
			if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payruns WHERE id = $1)`, line.PayrunID).Scan(&exists); checkErr == nil && exists {
				return payroll.PayrunLine{}, payroll.ErrPayrunFinalized
			}
			return payroll.PayrunLine{}, payroll.ErrPayrunNotFound
		}
		return payroll.PayrunLine{}, fmt.Errorf("failed to upsert payrun line: %w", err)
	}
	_ = json.Unmarshal(warningsBytes, &stored.Warnings)
	return stored, nil
}

// GetLineByID implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) GetLineByID(ctx context.Context, lineID string) (payroll.PayrunLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pl.id, pl.payrun_id, pl.employee_id, pl.gross, pl.unpaid_deduction, pl.pf_employee,
			pl.professional_tax, pl.other_deductions, pl.net, pl.unpaid_days, pl.working_days, pl.warnings,
			pl.created_at, pl.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name, e.employee_code
		FROM payrun_lines pl
		JOIN employees e ON e.id = pl.employee_id
		WHERE pl.id = $1
	`

	var line payroll.PayrunLine
	var warningsBytes []byte
	err := q.QueryRow(ctx, query, lineID).Scan(
		&line.ID, &line.PayrunID, &line.EmployeeID, &line.Gross, &line.UnpaidDeduction,
		&line.PFEmployee, &line.ProfessionalTax, &line.OtherDeductions, &line.Net,
		&line.UnpaidDays, &line.WorkingDays, &warningsBytes,
		&line.CreatedAt, &line.UpdatedAt,
		&line.EmployeeName, &line.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrunLine{}, payroll.ErrPayrunLineNotFound
		}
		return payroll.PayrunLine{}, fmt.Errorf("failed to get payrun line: %w", err)
	}
	_ = json.Unmarshal(warningsBytes, &line.Warnings)
	return line, nil
}

// GetLineByEmployee implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) GetLineByEmployee(ctx context.Context, payrunID string, employeeID string) (payroll.PayrunLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pl.id, pl.payrun_id, pl.employee_id, pl.gross, pl.unpaid_deduction, pl.pf_employee,
			pl.professional_tax, pl.other_deductions, pl.net, pl.unpaid_days, pl.working_days, pl.warnings,
			pl.created_at, pl.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name, e.employee_code
		FROM payrun_lines pl
		JOIN employees e ON e.id = pl.employee_id
		WHERE pl.payrun_id = $1 AND pl.employee_id = $2
	`

	var line payroll.PayrunLine
	var warningsBytes []byte
	err := q.QueryRow(ctx, query, payrunID, employeeID).Scan(
		&line.ID, &line.PayrunID, &line.EmployeeID, &line.Gross, &line.UnpaidDeduction,
		&line.PFEmployee, &line.ProfessionalTax, &line.OtherDeductions, &line.Net,
		&line.UnpaidDays, &line.WorkingDays, &warningsBytes,
		&line.CreatedAt, &line.UpdatedAt,
		&line.EmployeeName, &line.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrunLine{}, payroll.ErrEmployeeNotInPayrun
		}
		return payroll.PayrunLine{}, fmt.Errorf("failed to get payrun line by employee: %w", err)
	}
	_ = json.Unmarshal(warningsBytes, &line.Warnings)
	return line, nil
}

// ListLines implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) ListLines(ctx context.Context, payrunID string) ([]payroll.PayrunLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pl.id, pl.payrun_id, pl.employee_id, pl.gross, pl.unpaid_deduction, pl.pf_employee,
			pl.professional_tax, pl.other_deductions, pl.net, pl.unpaid_days, pl.working_days, pl.warnings,
			pl.created_at, pl.updated_at,
			e.first_name || ' ' || e.last_name AS employee_name, e.employee_code
		FROM payrun_lines pl
		JOIN employees e ON e.id = pl.employee_id
		WHERE pl.payrun_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, payrunID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrun lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.PayrunLine
	for rows.Next() {
		var line payroll.PayrunLine
		var warningsBytes []byte
		err := rows.Scan(
			&line.ID, &line.PayrunID, &line.EmployeeID, &line.Gross, &line.UnpaidDeduction,
			&line.PFEmployee, &line.ProfessionalTax, &line.OtherDeductions, &line.Net,
			&line.UnpaidDays, &line.WorkingDays, &warningsBytes,
			&line.CreatedAt, &line.UpdatedAt,
			&line.EmployeeName, &line.EmployeeCode,
		)
		if err != nil {
			return nil, err
		}
		_ = json.Unmarshal(warningsBytes, &line.Warnings)
		lines = append(lines, line)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// SumLines implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) SumLines(ctx context.Context, payrunID string) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COALESCE(SUM(gross), 0),
			COALESCE(SUM(unpaid_deduction + pf_employee + professional_tax + other_deductions), 0),
			COALESCE(SUM(net), 0)
		FROM payrun_lines
		WHERE payrun_id = $1
	`

	var gross, deductions, net decimal.Decimal
	if err := q.QueryRow(ctx, query, payrunID).Scan(&gross, &deductions, &net); err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum payrun lines: %w", err)
	}
	return gross, deductions, net, nil
}

// ========== PAYSLIPS ==========

// CreatePayslip implements payroll.PayrunRepository. The unique constraint
// on payrun_line_id makes snapshot generation idempotent: a second insert
// for the same line returns the stored row instead.
func (r *payrunRepositoryImpl) CreatePayslip(ctx context.Context, slip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			id, payrun_line_id, payrun_id, employee_id, employee_code, employee_name, department,
			period_start, period_end, gross, unpaid_deduction, pf_employee,
			professional_tax, other_deductions, net, generated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, payrun_line_id, payrun_id, employee_id, employee_code, employee_name, department,
			period_start, period_end, gross, unpaid_deduction, pf_employee,
			professional_tax, other_deductions, net, generated_at
	`

	var created payroll.Payslip
	err := q.QueryRow(ctx, query,
		slip.ID, slip.PayrunLineID, slip.PayrunID, slip.EmployeeID, slip.EmployeeCode, slip.EmployeeName, slip.Department,
		slip.PeriodStart, slip.PeriodEnd, slip.Gross, slip.UnpaidDeduction, slip.PFEmployee,
		slip.ProfessionalTax, slip.OtherDeductions, slip.Net, slip.GeneratedAt,
	).Scan(
		&created.ID, &created.PayrunLineID, &created.PayrunID, &created.EmployeeID,
		&created.EmployeeCode, &created.EmployeeName, &created.Department,
		&created.PeriodStart, &created.PeriodEnd, &created.Gross, &created.UnpaidDeduction,
		&created.PFEmployee, &created.ProfessionalTax, &created.OtherDeductions, &created.Net,
		&created.GeneratedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payslips_line") {
			return r.GetPayslipByLineID(ctx, slip.PayrunLineID)
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return created, nil
}

// GetPayslipByLineID implements payroll.PayrunRepository.
func (r *payrunRepositoryImpl) GetPayslipByLineID(ctx context.Context, lineID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payrun_line_id, payrun_id, employee_id, employee_code, employee_name, department,
			period_start, period_end, gross, unpaid_deduction, pf_employee,
			professional_tax, other_deductions, net, generated_at
		FROM payslips
		WHERE payrun_line_id = $1
	`

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, lineID).Scan(
		&slip.ID, &slip.PayrunLineID, &slip.PayrunID, &slip.EmployeeID,
		&slip.EmployeeCode, &slip.EmployeeName, &slip.Department,
		&slip.PeriodStart, &slip.PeriodEnd, &slip.Gross, &slip.UnpaidDeduction,
		&slip.PFEmployee, &slip.ProfessionalTax, &slip.OtherDeductions, &slip.Net,
		&slip.GeneratedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}

// GetPayslipByID implements payroll.PayrunRepository. The join on payruns
// scopes the lookup to the requesting company; another tenant's slip is
// indistinguishable from a missing one.
func (r *payrunRepositoryImpl) GetPayslipByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ps.id, ps.payrun_line_id, ps.payrun_id, ps.employee_id, ps.employee_code, ps.employee_name, ps.department,
			ps.period_start, ps.period_end, ps.gross, ps.unpaid_deduction, ps.pf_employee,
			ps.professional_tax, ps.other_deductions, ps.net, ps.generated_at
		FROM payslips ps
		JOIN payruns p ON p.id = ps.payrun_id
		WHERE ps.id = $1 AND p.company_id = $2
	`

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&slip.ID, &slip.PayrunLineID, &slip.PayrunID, &slip.EmployeeID,
		&slip.EmployeeCode, &slip.EmployeeName, &slip.Department,
		&slip.PeriodStart, &slip.PeriodEnd, &slip.Gross, &slip.UnpaidDeduction,
		&slip.PFEmployee, &slip.ProfessionalTax, &slip.OtherDeductions, &slip.Net,
		&slip.GeneratedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return slip, nil
}
