package timeoff

import (
	"context"
	"time"
)

// TimeOffRepository defines data access methods for leave requests.
type TimeOffRepository interface {
	// Create stores a new request in pending status. A reversed span maps to
	// ErrInvalidSpan.
	Create(ctx context.Context, req TimeOff) (TimeOff, error)

	// ListByEmployeeAndStatus returns requests for an employee filtered by
	// status whose from_date falls in [from, to] inclusive.
	ListByEmployeeAndStatus(ctx context.Context, employeeID string, status Status, from, to time.Time) ([]TimeOff, error)

	// SetStatus moves a request to approved/rejected.
	SetStatus(ctx context.Context, id string, status Status) error
}
