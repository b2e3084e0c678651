package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Durgaram26/hrms-sub000/internal/domain/audit"
	"github.com/Durgaram26/hrms-sub000/internal/domain/leave"
)

// TxManager runs a function inside a database transaction so the status
// change and the balance debit commit or roll back together.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	tx          TxManager
	requestRepo leave.RequestRepository
	balanceRepo leave.BalanceRepository
	auditor     audit.Recorder
}

func NewService(
	tx TxManager,
	requestRepo leave.RequestRepository,
	balanceRepo leave.BalanceRepository,
	auditor audit.Recorder,
) *Service {
	return &Service{
		tx:          tx,
		requestRepo: requestRepo,
		balanceRepo: balanceRepo,
		auditor:     auditor,
	}
}

func (s *Service) Apply(ctx context.Context, req *leave.ApplyRequest) (*leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if end.Before(start) {
		return nil, leave.ErrInvalidDateRange
	}

	leaveType := leave.LeaveType(strings.ToLower(req.LeaveType))

	totalDays := leave.DaysBetween(start, end)
	if req.HalfDay {
		if !start.Equal(end) {
			return nil, leave.ErrInvalidDateRange
		}
		totalDays = decimal.NewFromFloat(0.5)
	}

	overlapping, err := s.requestRepo.HasOverlapping(ctx, req.EmployeeID, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return nil, leave.ErrOverlappingRequest
	}

	// Advisory check only. The authoritative check is the conditional
	// debit at approval time.
	if leaveType != leave.LeaveTypeUnpaid {
		balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, leaveType, time.Now().UTC().Year())
		if err != nil {
			return nil, err
		}
		if balance.Remaining.LessThan(totalDays) {
			return nil, leave.ErrInsufficientBalance
		}
	}

	request := &leave.Request{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  totalDays,
		Reason:     req.Reason,
		Status:     leave.RequestStatusPending,
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.auditor.Record(ctx, audit.EntityLeaveRequest, request.ID, audit.ActionCreate, req.EmployeeID, "leave request submitted", nil, request)

	return toRequestResponse(request), nil
}

// Review decides a pending request. Approval debits the balance in the same
// transaction as the status change, so a request is never approved without
// the days being taken, and two concurrent approvals of requests that
// together exceed the balance cannot both succeed.
func (s *Service) Review(ctx context.Context, req *leave.ReviewRequest) (*leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if request.Status != leave.RequestStatusPending {
		return nil, leave.ErrNotPending
	}

	before := *request
	now := time.Now().UTC()

	status := leave.RequestStatusRejected
	action := audit.ActionReject
	if strings.ToLower(req.Decision) == "approved" {
		status = leave.RequestStatusApproved
		action = audit.ActionApprove
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requestRepo.MarkReviewed(ctx, request.ID, status, req.ReviewerID, req.Comment, now); err != nil {
			return err
		}
		if status == leave.RequestStatusApproved && request.LeaveType != leave.LeaveTypeUnpaid {
			// The balance year is the year the request was applied in, not
			// the year the leave falls in.
			return s.balanceRepo.Debit(ctx, request.EmployeeID, request.LeaveType, request.CreatedAt.Year(), request.TotalDays)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = status
	request.ReviewedBy = &req.ReviewerID
	request.ReviewedAt = &now
	request.ReviewComment = req.Comment
	request.UpdatedAt = now

	s.auditor.Record(ctx, audit.EntityLeaveRequest, request.ID, action, req.ReviewerID, "leave request "+string(status), &before, request)

	return toRequestResponse(request), nil
}

func (s *Service) Withdraw(ctx context.Context, requestID, employeeID string) (*leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.EmployeeID != employeeID {
		return nil, leave.ErrNotOwner
	}
	if request.Status != leave.RequestStatusPending {
		return nil, leave.ErrNotPending
	}

	before := *request
	now := time.Now().UTC()

	if err := s.requestRepo.MarkReviewed(ctx, requestID, leave.RequestStatusWithdrawn, employeeID, nil, now); err != nil {
		return nil, err
	}

	request.Status = leave.RequestStatusWithdrawn
	request.ReviewedBy = &employeeID
	request.ReviewedAt = &now
	request.UpdatedAt = now

	s.auditor.Record(ctx, audit.EntityLeaveRequest, request.ID, audit.ActionUpdate, employeeID, "leave request cancelled", &before, request)

	return toRequestResponse(request), nil
}

func (s *Service) Remove(ctx context.Context, requestID, employeeID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrNotOwner
	}
	if request.Status != leave.RequestStatusWithdrawn && request.Status != leave.RequestStatusRejected {
		return leave.ErrNotDeletable
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	s.auditor.Record(ctx, audit.EntityLeaveRequest, request.ID, audit.ActionDelete, request.EmployeeID, "leave request deleted", request, nil)

	return nil
}

func (s *Service) GetRequest(ctx context.Context, requestID string) (*leave.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return toRequestResponse(request), nil
}

func (s *Service) ListRequests(ctx context.Context, filter *leave.RequestFilter) (*leave.ListRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toRequestResponse(&requests[i]))
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &leave.ListRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

func (s *Service) GetBalances(ctx context.Context, employeeID string, year int) (*leave.ListBalanceResponse, error) {
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	balances, err := s.balanceRepo.ListByEmployeeYear(ctx, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}

	responses := make([]leave.BalanceResponse, 0, len(balances))
	for i := range balances {
		responses = append(responses, *toBalanceResponse(&balances[i]))
	}

	return &leave.ListBalanceResponse{
		EmployeeID: employeeID,
		Year:       year,
		Balances:   responses,
	}, nil
}

func (s *Service) UpsertBalance(ctx context.Context, req *leave.UpsertBalanceRequest) (*leave.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	totalAllowed, _ := decimal.NewFromString(req.TotalAllowed)
	carryForward := decimal.Zero
	if req.CarryForward != "" {
		carryForward, _ = decimal.NewFromString(req.CarryForward)
	}

	balance := &leave.Balance{
		ID:           uuid.New().String(),
		EmployeeID:   req.EmployeeID,
		LeaveType:    leave.LeaveType(strings.ToLower(req.LeaveType)),
		Year:         req.Year,
		TotalAllowed: totalAllowed,
		Used:         decimal.Zero,
		Remaining:    totalAllowed.Add(carryForward),
		CarryForward: carryForward,
	}

	// The upsert preserves used days on conflict and recomputes remaining,
	// so re-read for the authoritative state.
	if err := s.balanceRepo.Upsert(ctx, balance); err != nil {
		return nil, fmt.Errorf("failed to upsert leave balance: %w", err)
	}

	stored, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, balance.EmployeeID, balance.LeaveType, balance.Year)
	if err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.EntityLeaveBalance, stored.ID, audit.ActionUpdate, req.EmployeeID, "leave allowance updated", nil, stored)

	return toBalanceResponse(stored), nil
}

func toRequestResponse(r *leave.Request) *leave.RequestResponse {
	resp := &leave.RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		LeaveType:     string(r.LeaveType),
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		TotalDays:     r.TotalDays.String(),
		Reason:        r.Reason,
		Status:        string(r.Status),
		ReviewedBy:    r.ReviewedBy,
		ReviewComment: r.ReviewComment,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func toBalanceResponse(b *leave.Balance) *leave.BalanceResponse {
	return &leave.BalanceResponse{
		ID:           b.ID,
		EmployeeID:   b.EmployeeID,
		LeaveType:    string(b.LeaveType),
		Year:         b.Year,
		TotalAllowed: b.TotalAllowed.String(),
		Used:         b.Used.String(),
		Remaining:    b.Remaining.String(),
		CarryForward: b.CarryForward.String(),
	}
}
