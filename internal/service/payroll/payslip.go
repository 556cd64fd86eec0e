package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/employee"
	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/hrpulse-id/payroll-backend-go/internal/pkg/pdf"
)

// PayslipGenerator snapshots finalized payrun lines into immutable payslips.
type PayslipGenerator struct {
	payrunRepo   payroll.PayrunRepository
	employeeRepo employee.EmployeeRepository
	clock        func() time.Time
}

func NewPayslipGenerator(payrunRepo payroll.PayrunRepository, employeeRepo employee.EmployeeRepository) *PayslipGenerator {
	return &PayslipGenerator{
		payrunRepo:   payrunRepo,
		employeeRepo: employeeRepo,
		clock:        time.Now,
	}
}

// Generate copies the line's values into a payslip row. The owning payrun
// must be finalized. Every field is captured at call time; later mutation of
// the line never reaches the stored slip. Generating again for the same line
// returns the existing snapshot unchanged.
func (g *PayslipGenerator) Generate(ctx context.Context, lineID string, companyID string) (payroll.Payslip, error) {
	existing, err := g.payrunRepo.GetPayslipByLineID(ctx, lineID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, payroll.ErrPayslipNotFound) {
		return payroll.Payslip{}, fmt.Errorf("failed to look up payslip: %w", err)
	}

	line, err := g.payrunRepo.GetLineByID(ctx, lineID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	run, err := g.payrunRepo.GetByID(ctx, line.PayrunID, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if run.Status != payroll.PayrunStatusFinalized {
		return payroll.Payslip{}, payroll.ErrPayrunNotFinalized
	}

	emp, err := g.employeeRepo.GetByID(ctx, line.EmployeeID, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	slip := payroll.Payslip{
		ID:              uuid.NewString(),
		PayrunLineID:    line.ID,
		PayrunID:        run.ID,
		EmployeeID:      emp.ID,
		EmployeeCode:    emp.EmployeeCode,
		EmployeeName:    emp.FullName(),
		Department:      emp.Department,
		PeriodStart:     run.PeriodStart,
		PeriodEnd:       run.PeriodEnd,
		Gross:           line.Gross,
		UnpaidDeduction: line.UnpaidDeduction,
		PFEmployee:      line.PFEmployee,
		ProfessionalTax: line.ProfessionalTax,
		OtherDeductions: line.OtherDeductions,
		Net:             line.Net,
		GeneratedAt:     g.clock().UTC(),
	}

	created, err := g.payrunRepo.CreatePayslip(ctx, slip)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to store payslip: %w", err)
	}
	return created, nil
}

// GetByID returns a stored payslip snapshot. The lookup is scoped to the
// requesting company; another tenant's slip reads as not found.
func (g *PayslipGenerator) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	return g.payrunRepo.GetPayslipByID(ctx, id, companyID)
}

// RenderPDF renders the stored snapshot as a PDF. Amounts come from the
// payslip row, never from the live line.
func (g *PayslipGenerator) RenderPDF(ctx context.Context, id string, companyID string) ([]byte, error) {
	slip, err := g.payrunRepo.GetPayslipByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	return pdf.RenderPayslip(slip)
}

var _ payroll.PayslipService = (*PayslipGenerator)(nil)
