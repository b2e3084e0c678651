package leave

import "errors"

var (
	ErrRequestNotFound     = errors.New("leave request not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrNotPending          = errors.New("leave request is not pending")
	ErrNotDeletable        = errors.New("approved leave request cannot be deleted")
	ErrNotOwner            = errors.New("leave request does not belong to employee")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrOverlappingRequest  = errors.New("overlapping leave request already exists")
)
