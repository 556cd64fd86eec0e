package timeoff

import "errors"

var (
	ErrTimeOffNotFound = errors.New("time off request not found")
	ErrInvalidSpan     = errors.New("time off from_date must not be after to_date")
)
