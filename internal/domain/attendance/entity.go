package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

type RegularizationStatus string

const (
	RegularizationNone     RegularizationStatus = "none"
	RegularizationPending  RegularizationStatus = "pending"
	RegularizationApproved RegularizationStatus = "approved"
	RegularizationRejected RegularizationStatus = "rejected"
)

// Attendance is the single record an employee may hold for a calendar day.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time // calendar day, truncated; unique per employee

	ClockIn          *time.Time
	ClockOut         *time.Time
	ClockInLocation  *string
	ClockOutLocation *string

	ClockInLatitude   *float64
	ClockInLongitude  *float64
	ClockOutLatitude  *float64
	ClockOutLongitude *float64

	// IsInGeoFence is true only when the geofence check passed at clock-in
	// and, if a clock-out exists, at clock-out as well.
	IsInGeoFence bool

	Status    Status
	WorkHours *float64 // (ClockOut - ClockIn) in hours, two decimals

	IsRegularizationRequested bool
	RegularizationReason      *string
	RegularizationStatus      RegularizationStatus
	RegularizationApprovedBy  *string
	RegularizationDate        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized for responses
	EmployeeName *string
}

// RoundWorkHours computes the derived work-hours field from the clock pair,
// rounded to two decimals. Returns nil when either side is missing.
func RoundWorkHours(clockIn, clockOut *time.Time) *float64 {
	if clockIn == nil || clockOut == nil {
		return nil
	}
	hours := clockOut.Sub(*clockIn).Hours()
	rounded := float64(int64(hours*100+0.5)) / 100
	return &rounded
}
