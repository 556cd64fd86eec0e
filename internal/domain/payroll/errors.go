package payroll

import "errors"

var (
	ErrPayrunNotFound      = errors.New("payrun not found")
	ErrPayrunExists        = errors.New("payrun already exists for this period")
	ErrPayrunFinalized     = errors.New("payrun is finalized and cannot be modified")
	ErrPayrunNotFinalized  = errors.New("payrun is not finalized")
	ErrPayrunLineNotFound  = errors.New("payrun line not found")
	ErrPayslipNotFound     = errors.New("payslip not found")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrEmployeeNotInPayrun = errors.New("employee has no line in this payrun")
)
