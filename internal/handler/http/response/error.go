package response

import (
	"errors"
	"net/http"

	"github.com/Durgaram26/hrms-sub000/internal/domain/attendance"
	"github.com/Durgaram26/hrms-sub000/internal/domain/auth"
	"github.com/Durgaram26/hrms-sub000/internal/domain/employee"
	"github.com/Durgaram26/hrms-sub000/internal/domain/leave"
	"github.com/Durgaram26/hrms-sub000/internal/domain/report"
	"github.com/Durgaram26/hrms-sub000/internal/domain/user"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Attendance already submitted for this date")
	case errors.Is(err, attendance.ErrInvalidTimeRange):
		BadRequest(w, "Clock-out time must be after clock-in time", nil)
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location coordinates are required at this branch", nil)
	case errors.Is(err, attendance.ErrNotOwner):
		Forbidden(w, "Attendance record belongs to another employee")
	case errors.Is(err, attendance.ErrAlreadyRequested):
		Conflict(w, "Regularization already requested")
	case errors.Is(err, attendance.ErrNoPendingRequest):
		Conflict(w, "No pending regularization request")

	// Leave domain errors
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrNotPending):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotDeletable):
		Conflict(w, "Approved leave request cannot be deleted")
	case errors.Is(err, leave.ErrNotOwner):
		Forbidden(w, "Leave request belongs to another employee")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Overlapping leave request already exists")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
