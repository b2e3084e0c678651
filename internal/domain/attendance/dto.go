package attendance

import (
	"strings"

	"github.com/Durgaram26/hrms-sub000/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type SubmitAttendanceRequest struct {
	EmployeeID   string   `json:"-"`
	Date         *string  `json:"date,omitempty"` // YYYY-MM-DD; defaults to today in the employee's timezone
	ClockInTime  string   `json:"clock_in_time"`  // RFC3339
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
	Location     string   `json:"location"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	OutLatitude  *float64 `json:"out_latitude,omitempty"`
	OutLongitude *float64 `json:"out_longitude,omitempty"`
}

func (r *SubmitAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClockInTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in_time",
			Message: "clock_in_time is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.ClockInTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_in_time",
			Message: "clock_in_time must be an RFC3339 timestamp",
		})
	}

	if r.ClockOutTime != nil && *r.ClockOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if r.OutLatitude != nil && !validator.IsValidLatitude(*r.OutLatitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "out_latitude",
			Message: "out_latitude must be between -90 and 90",
		})
	}
	if r.OutLongitude != nil && !validator.IsValidLongitude(*r.OutLongitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "out_longitude",
			Message: "out_longitude must be between -180 and 180",
		})
	}

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be supplied together",
		})
	}
	if (r.OutLatitude == nil) != (r.OutLongitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "out_latitude",
			Message: "out_latitude and out_longitude must be supplied together",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	ClockInTime       *string  `json:"clock_in_time,omitempty"`
	ClockOutTime      *string  `json:"clock_out_time,omitempty"`
	ClockInLocation   *string  `json:"clock_in_location,omitempty"`
	ClockOutLocation  *string  `json:"clock_out_location,omitempty"`
	ClockInLatitude   *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude  *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude  *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude *float64 `json:"clock_out_longitude,omitempty"`
	IsInGeoFence      bool     `json:"is_in_geo_fence"`
	Status            string   `json:"status"`
	WorkHours         *float64 `json:"work_hours,omitempty"`

	IsRegularizationRequested bool    `json:"is_regularization_requested"`
	RegularizationStatus      string  `json:"regularization_status"`
	RegularizationReason      *string `json:"regularization_reason,omitempty"`
	RegularizationApprovedBy  *string `json:"regularization_approved_by,omitempty"`
	RegularizationDate        *string `json:"regularization_date,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ========================================
// STATUS DTOs
// ========================================

type DayState string

const (
	DayStateNotCheckedIn DayState = "not-checked-in"
	DayStateCheckedIn    DayState = "checked-in"
	DayStateCheckedOut   DayState = "checked-out"
)

type StatusRequest struct {
	EmployeeID string   `json:"-"`
	Date       *string  `json:"date,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type StatusResponse struct {
	State DayState `json:"state"`

	// WithinGeofence is set only when a current location was supplied.
	// Informational; nothing is persisted.
	WithinGeofence *bool `json:"within_geofence,omitempty"`

	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// ========================================
// LIST DTOs
// ========================================

type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil && *f.Status != "" {
		validStatuses := []string{"present", "absent", "leave"}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, absent, leave",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Filter is the HR/admin cross-employee query.
type Filter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	Status       *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"`
}

func (f *Filter) Validate() error {
	h := HistoryFilter{
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Status:    f.Status,
		Page:      f.Page,
		Limit:     f.Limit,
		SortOrder: f.SortOrder,
	}
	if err := h.Validate(); err != nil {
		return err
	}
	f.Page = h.Page
	f.Limit = h.Limit
	f.SortOrder = h.SortOrder
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ========================================
// REGULARIZATION DTOs
// ========================================

type RegularizationRequest struct {
	AttendanceID string `json:"-"`
	EmployeeID   string `json:"-"`
	Reason       string `json:"reason"`
}

func (r *RegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "regularization reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ProcessRegularizationRequest struct {
	AttendanceID string `json:"-"`
	ReviewerID   string `json:"-"`
	Decision     string `json:"decision"` // approved, rejected

	// Optional corrections applied on approval.
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
}

func (r *ProcessRegularizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Decision), []string{"approved", "rejected"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: approved, rejected",
		})
	}

	if r.ClockInTime != nil && *r.ClockInTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockInTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an RFC3339 timestamp",
			})
		}
	}
	if r.ClockOutTime != nil && *r.ClockOutTime != "" {
		if _, valid := validator.IsValidDateTime(*r.ClockOutTime); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
