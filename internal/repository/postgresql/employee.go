package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			user_id, company_id, employee_code, first_name, last_name, department,
			join_date, base_salary, allowances, pf_applicable, professional_tax_applicable, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, user_id, company_id, employee_code, first_name, last_name, department,
			join_date, base_salary, allowances, pf_applicable, professional_tax_applicable, status,
			created_at, updated_at
	`

	var created employee.Employee
	err := q.QueryRow(ctx, query,
		newEmployee.UserID, newEmployee.CompanyID, newEmployee.EmployeeCode,
		newEmployee.FirstName, newEmployee.LastName, newEmployee.Department,
		newEmployee.JoinDate, newEmployee.BaseSalary, newEmployee.Allowances,
		newEmployee.PFApplicable, newEmployee.ProfessionalTaxApplicable, newEmployee.Status,
	).Scan(
		&created.ID, &created.UserID, &created.CompanyID, &created.EmployeeCode,
		&created.FirstName, &created.LastName, &created.Department,
		&created.JoinDate, &created.BaseSalary, &created.Allowances,
		&created.PFApplicable, &created.ProfessionalTaxApplicable, &created.Status,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, company_id, employee_code, first_name, last_name, department,
			join_date, base_salary, allowances, pf_applicable, professional_tax_applicable, status,
			created_at, updated_at
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.EmployeeCode,
		&emp.FirstName, &emp.LastName, &emp.Department,
		&emp.JoinDate, &emp.BaseSalary, &emp.Allowances,
		&emp.PFApplicable, &emp.ProfessionalTaxApplicable, &emp.Status,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id, user_id, company_id, employee_code, first_name, last_name, department,
			join_date, base_salary, allowances, pf_applicable, professional_tax_applicable, status,
			created_at, updated_at
		FROM employees
		WHERE company_id = $1 AND status = $2
		ORDER BY employee_code
	`

	rows, err := q.Query(ctx, query, companyID, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		err := rows.Scan(
			&emp.ID, &emp.UserID, &emp.CompanyID, &emp.EmployeeCode,
			&emp.FirstName, &emp.LastName, &emp.Department,
			&emp.JoinDate, &emp.BaseSalary, &emp.Allowances,
			&emp.PFApplicable, &emp.ProfessionalTaxApplicable, &emp.Status,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// UpdateStatus implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status employee.Status) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, status, id, companyID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee status: %w", err)
	}
	return nil
}
