package attendance

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts a new attendance record. Returns ErrAlreadyClockedIn
	// when a record for the same employee and date already exists.
	Create(ctx context.Context, att *Attendance) error

	Update(ctx context.Context, att *Attendance) error

	GetByID(ctx context.Context, id string) (*Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	ListByEmployee(ctx context.Context, employeeID string, filter *HistoryFilter) ([]Attendance, int64, error)
	List(ctx context.Context, filter *Filter) ([]Attendance, int64, error)

	// ListMissingForDate returns employee IDs with no record on the given
	// date, used by the absence marking job.
	ListMissingForDate(ctx context.Context, employeeIDs []string, date time.Time) ([]string, error)
}
