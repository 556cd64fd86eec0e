package audit

import "time"

// Entry is one append-only audit record. Entries are never mutated or
// deleted.
type Entry struct {
	ID        string
	UserID    string
	Role      string
	Action    string
	Details   string
	CreatedAt time.Time
}

// Actions recorded by the payroll core.
const (
	ActionPayrunFinalized  = "payrun_finalized"
	ActionProfileCompleted = "profile_completed"
)
