package employee

import "context"

// EmployeeRepository defines data access methods for the employee directory.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	// Create creates a new employee row. A duplicate employee code maps to
	// ErrEmployeeCodeExists.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByID retrieves an employee by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID lists active employees with their compensation
	// fields and applicability flags. This is the payrun engine's input.
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	// UpdateStatus performs the soft lifecycle transition; employees are
	// never hard-deleted.
	UpdateStatus(ctx context.Context, id string, companyID string, status Status) error
}

// CodeSequenceRepository issues serial numbers for employee codes. The
// increment must be atomic across processes: concurrent callers for the same
// (companyCode, year) must never observe the same serial.
type CodeSequenceRepository interface {
	NextSerial(ctx context.Context, companyCode string, year int) (int, error)
}
