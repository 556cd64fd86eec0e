package pdf

import (
	"bytes"
	"fmt"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// RenderPayslip renders an employee-facing payslip document from a stored
// snapshot. The layout is intentionally plain: header, identity block, then
// an earnings/deductions table ending in net pay.
func RenderPayslip(slip payroll.Payslip) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Payslip "+slip.EmployeeCode, false)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.Cell(0, 10, "Payslip")
	doc.Ln(12)

	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Period: %s to %s",
		slip.PeriodStart.Format("02 Jan 2006"),
		slip.PeriodEnd.Format("02 Jan 2006")))
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 11)
	doc.Cell(0, 6, slip.EmployeeName)
	doc.Ln(6)
	doc.SetFont("Helvetica", "", 10)
	doc.Cell(0, 6, fmt.Sprintf("Code: %s", slip.EmployeeCode))
	doc.Ln(6)
	if slip.Department != "" {
		doc.Cell(0, 6, fmt.Sprintf("Department: %s", slip.Department))
		doc.Ln(6)
	}
	doc.Ln(4)

	amountRow(doc, "Gross pay", slip.Gross, false)
	amountRow(doc, "Unpaid days deduction", slip.UnpaidDeduction.Neg(), false)
	amountRow(doc, "Provident fund (employee)", slip.PFEmployee.Neg(), false)
	amountRow(doc, "Professional tax", slip.ProfessionalTax.Neg(), false)
	amountRow(doc, "Other deductions", slip.OtherDeductions.Neg(), false)
	amountRow(doc, "Net pay", slip.Net, true)

	doc.Ln(8)
	doc.SetFont("Helvetica", "I", 8)
	doc.Cell(0, 5, fmt.Sprintf("Generated %s. This document is a snapshot; later payroll changes do not affect it.",
		slip.GeneratedAt.Format("02 Jan 2006 15:04 MST")))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func amountRow(doc *gofpdf.Fpdf, label string, amount decimal.Decimal, emphasize bool) {
	if emphasize {
		doc.SetFont("Helvetica", "B", 11)
	} else {
		doc.SetFont("Helvetica", "", 10)
	}
	doc.CellFormat(120, 7, label, "", 0, "L", false, 0, "")
	doc.CellFormat(50, 7, amount.StringFixed(2), "", 1, "R", false, 0, "")
}
