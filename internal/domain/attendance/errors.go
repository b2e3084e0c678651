package attendance

import "errors"

// Attendance domain errors
var (
	// Submission errors
	ErrInvalidTimeRange = errors.New("clock out time must be after clock in time")
	ErrLocationRequired = errors.New("location coordinates are required for this branch")
	ErrAlreadyClockedIn = errors.New("attendance for this day is already recorded")

	// Regularization errors
	ErrNotOwner         = errors.New("attendance record belongs to another employee")
	ErrAlreadyRequested = errors.New("a regularization request is already pending")
	ErrNoPendingRequest = errors.New("no pending regularization request to process")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
