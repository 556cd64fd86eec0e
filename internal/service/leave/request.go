package leave

import (
	"context"
	"log/slog"

	"github.com/hrpulse-id/payroll-backend-go/internal/domain/timeoff"
)

// RequestService handles the time-off request lifecycle: submission into
// pending status and the approve/reject decision.
type RequestService struct {
	timeOffRepo timeoff.TimeOffRepository
}

func NewRequestService(timeOffRepo timeoff.TimeOffRepository) *RequestService {
	return &RequestService{timeOffRepo: timeOffRepo}
}

// Submit stores a new request in pending status.
func (s *RequestService) Submit(ctx context.Context, req timeoff.TimeOff) (timeoff.TimeOff, error) {
	if req.ToDate.Before(req.FromDate) {
		return timeoff.TimeOff{}, timeoff.ErrInvalidSpan
	}
	created, err := s.timeOffRepo.Create(ctx, req)
	if err != nil {
		return timeoff.TimeOff{}, err
	}
	slog.Info("time off requested",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"days", created.Days(),
	)
	return created, nil
}

// Decide moves a pending request to approved or rejected. Only approved
// requests consume leave balance.
func (s *RequestService) Decide(ctx context.Context, id string, approve bool) error {
	status := timeoff.StatusRejected
	if approve {
		status = timeoff.StatusApproved
	}
	if err := s.timeOffRepo.SetStatus(ctx, id, status); err != nil {
		return err
	}
	slog.Info("time off decided", "request_id", id, "status", status)
	return nil
}
