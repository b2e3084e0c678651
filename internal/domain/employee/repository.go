package employee

import "context"

// Repository is the read-only employee lookup.
type Repository interface {
	// GetByID retrieves an employee by ID.
	GetByID(ctx context.Context, id string) (*Employee, error)

	// ListActiveIDs returns the IDs of all active employees. Used by the
	// absence-marking background job.
	ListActiveIDs(ctx context.Context) ([]string, error)
}
