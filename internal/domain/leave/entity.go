package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusWithdrawn RequestStatus = "cancelled"
)

type LeaveType string

const (
	LeaveTypeAnnual    LeaveType = "annual"
	LeaveTypeSick      LeaveType = "sick"
	LeaveTypeUnpaid    LeaveType = "unpaid"
	LeaveTypeMaternity LeaveType = "maternity"
	LeaveTypePaternity LeaveType = "paternity"
)

// Balance is one employee's ledger for a leave type in a given year.
// Remaining is always TotalAllowed + CarryForward - Used.
type Balance struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	LeaveType    LeaveType       `json:"leave_type"`
	Year         int             `json:"year"`
	TotalAllowed decimal.Decimal `json:"total_allowed"`
	Used         decimal.Decimal `json:"used"`
	Remaining    decimal.Decimal `json:"remaining"`
	CarryForward decimal.Decimal `json:"carry_forward"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type Request struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveType     LeaveType       `json:"leave_type"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	TotalDays     decimal.Decimal `json:"total_days"`
	Reason        string          `json:"reason"`
	Status        RequestStatus   `json:"status"`
	ReviewedBy    *string         `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
	ReviewComment *string         `json:"review_comment,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	EmployeeName *string `json:"employee_name,omitempty"`
}

// DaysBetween counts the days a request spans, end date inclusive.
// Half day requests carry 0.5 directly and skip this calculation.
func DaysBetween(start, end time.Time) decimal.Decimal {
	days := int(end.Sub(start).Hours()/24) + 1
	return decimal.NewFromInt(int64(days))
}
