package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/audit"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/database"
	"github.com/hrpulse-id/payroll-backend-go/internal/repository/postgresql"
)

// ProvisioningService creates employee profiles with generated codes.
type ProvisioningService struct {
	employeeRepo employee.EmployeeRepository
	codes        *CodeGenerator
	auditRepo    audit.AuditRepository
	clock        func() time.Time

	// inTx runs fn atomically; serial issuance, the employee insert and the
	// audit append commit or roll back together.
	inTx func(ctx context.Context, fn func(ctx context.Context) error) error
}

func NewProvisioningService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	codes *CodeGenerator,
	auditRepo audit.AuditRepository,
) *ProvisioningService {
	return &ProvisioningService{
		employeeRepo: employeeRepo,
		codes:        codes,
		auditRepo:    auditRepo,
		clock:        time.Now,
		inTx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// Provision validates the request, issues an employee code for the join year
// and creates the profile as active. The serial increment, the employee row
// and the audit entry land in a single transaction: a failed insert releases
// no code gap and a provisioned employee is always audited.
func (s *ProvisioningService) Provision(ctx context.Context, req employee.ProvisionEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		joinDate = s.clock().UTC()
	}

	var created employee.Employee
	err = s.inTx(ctx, func(txCtx context.Context) error {
		code, err := s.codes.Generate(txCtx, req.FirstName, req.LastName, req.CompanyCode, joinDate.Year())
		if err != nil {
			return err
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			CompanyID:                 req.CompanyID,
			EmployeeCode:              code,
			FirstName:                 req.FirstName,
			LastName:                  req.LastName,
			Department:                req.Department,
			JoinDate:                  joinDate,
			BaseSalary:                req.BaseSalary,
			Allowances:                req.Allowances,
			PFApplicable:              req.PFApplicable,
			ProfessionalTaxApplicable: req.ProfessionalTaxApplicable,
			Status:                    employee.StatusActive,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		return s.auditRepo.Append(txCtx, audit.Entry{
			UserID: created.ID,
			Role:   "employee",
			Action: audit.ActionProfileCompleted,
			Details: fmt.Sprintf("provisioned employee %s (%s) in department %s",
				created.EmployeeCode, created.FullName(), created.Department),
		})
	})
	if err != nil {
		return employee.Employee{}, err
	}

	slog.Info("employee provisioned",
		"employee_id", created.ID,
		"employee_code", created.EmployeeCode,
		"company_id", created.CompanyID,
	)
	return created, nil
}

// GetByID returns one employee with company isolation.
func (s *ProvisioningService) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id, companyID)
}

// UpdateStatus performs the soft lifecycle transition. Employees leave the
// payroll population by status change, never by row deletion.
func (s *ProvisioningService) UpdateStatus(ctx context.Context, id string, companyID string, status employee.Status) error {
	if err := s.employeeRepo.UpdateStatus(ctx, id, companyID, status); err != nil {
		return err
	}
	slog.Info("employee status updated", "employee_id", id, "status", status)
	return nil
}
