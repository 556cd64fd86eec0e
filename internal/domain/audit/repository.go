package audit

import "context"

// AuditRepository is the append-only audit sink.
type AuditRepository interface {
	Append(ctx context.Context, entry Entry) error
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
