package report

import (
	"context"
	"time"
)

type Repository interface {
	// Summarize aggregates attendance per employee over the inclusive
	// date range. Employees without any record in the range are omitted.
	Summarize(ctx context.Context, start, end time.Time, employeeID, departmentID *string) ([]EmployeeSummary, error)
}
