package leave

import (
	"strings"

	"github.com/Durgaram26/hrms-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var validLeaveTypes = []string{"annual", "sick", "unpaid", "maternity", "paternity"}

// ========================================
// REQUEST DTOs
// ========================================

type ApplyRequest struct {
	EmployeeID string  `json:"-"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	HalfDay    bool    `json:"half_day"`
	Reason     string  `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.LeaveType), validLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: annual, sick, unpaid, maternity, paternity",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewRequest struct {
	RequestID  string  `json:"-"`
	ReviewerID string  `json:"-"`
	Decision   string  `json:"decision"` // approved, rejected
	Comment    *string `json:"comment,omitempty"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(strings.ToLower(r.Decision), []string{"approved", "rejected"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of: approved, rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`
	Status     *string `json:"status,omitempty"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RequestFilter) Validate() error {
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

	if f.LeaveType != nil && *f.LeaveType != "" {
		if !validator.IsInSlice(strings.ToLower(*f.LeaveType), validLeaveTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type",
				Message: "leave_type must be one of: annual, sick, unpaid, maternity, paternity",
			})
		}
	}

	if f.Status != nil && *f.Status != "" {
		validStatuses := []string{"pending", "approved", "rejected", "cancelled"}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected, cancelled",
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	LeaveType     string  `json:"leave_type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	TotalDays     string  `json:"total_days"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ReviewedBy    *string `json:"reviewed_by,omitempty"`
	ReviewedAt    *string `json:"reviewed_at,omitempty"`
	ReviewComment *string `json:"review_comment,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListRequestResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}

// ========================================
// BALANCE DTOs
// ========================================

type UpsertBalanceRequest struct {
	EmployeeID   string `json:"employee_id"`
	LeaveType    string `json:"leave_type"`
	Year         int    `json:"year"`
	TotalAllowed string `json:"total_allowed"`
	CarryForward string `json:"carry_forward"`
}

func (r *UpsertBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.LeaveType), validLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: annual, sick, unpaid, maternity, paternity",
		})
	}

	if r.Year < 2000 || r.Year > 2200 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if validator.IsEmpty(r.TotalAllowed) {
		errs = append(errs, validator.ValidationError{
			Field:   "total_allowed",
			Message: "total_allowed is required",
		})
	} else if d, err := decimal.NewFromString(r.TotalAllowed); err != nil || d.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "total_allowed",
			Message: "total_allowed must be a non-negative number",
		})
	}

	if r.CarryForward != "" {
		if d, err := decimal.NewFromString(r.CarryForward); err != nil || d.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "carry_forward",
				Message: "carry_forward must be a non-negative number",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type BalanceResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	LeaveType    string `json:"leave_type"`
	Year         int    `json:"year"`
	TotalAllowed string `json:"total_allowed"`
	Used         string `json:"used"`
	Remaining    string `json:"remaining"`
	CarryForward string `json:"carry_forward"`
}

type ListBalanceResponse struct {
	EmployeeID string            `json:"employee_id"`
	Year       int               `json:"year"`
	Balances   []BalanceResponse `json:"balances"`
}
