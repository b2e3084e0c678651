package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BalanceRepository interface {
	GetByEmployeeTypeYear(ctx context.Context, employeeID string, leaveType LeaveType, year int) (*Balance, error)
	ListByEmployeeYear(ctx context.Context, employeeID string, year int) ([]Balance, error)

	Upsert(ctx context.Context, balance *Balance) error

	// Debit atomically moves days from remaining to used. Returns
	// ErrInsufficientBalance when remaining is less than the amount, and
	// ErrBalanceNotFound when no ledger row exists.
	Debit(ctx context.Context, employeeID string, leaveType LeaveType, year int, days decimal.Decimal) error

	// Credit reverses a debit, restoring days to remaining.
	Credit(ctx context.Context, employeeID string, leaveType LeaveType, year int, days decimal.Decimal) error
}

type RequestRepository interface {
	Create(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	Delete(ctx context.Context, id string) error

	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter *RequestFilter) ([]Request, int64, error)

	// HasOverlapping reports whether the employee already holds a pending
	// or approved request intersecting the date range.
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time, excludeID string) (bool, error)

	// MarkReviewed transitions a pending request in one statement. Returns
	// ErrNotPending when the request has already been decided.
	MarkReviewed(ctx context.Context, id string, status RequestStatus, reviewerID string, comment *string, reviewedAt time.Time) error
}
