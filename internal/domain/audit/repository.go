package audit

import "context"

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter *Filter) ([]Entry, int64, error)
}

// Recorder is the write-side interface handed to other services. Failures
// are logged, never propagated, so a broken trail cannot block business
// operations.
type Recorder interface {
	Record(ctx context.Context, entityType EntityType, entityID string, action Action, actorID, message string, before, after any)
}
