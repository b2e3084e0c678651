package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Durgaram26/hrms-sub000/internal/domain/attendance"
	"github.com/Durgaram26/hrms-sub000/internal/domain/audit"
	"github.com/Durgaram26/hrms-sub000/internal/domain/employee"
	"github.com/Durgaram26/hrms-sub000/internal/domain/geofence"
	"github.com/Durgaram26/hrms-sub000/internal/pkg/validator"
)

type Service struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	geofenceRepo   geofence.Repository
	auditor        audit.Recorder
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	geofenceRepo geofence.Repository,
	auditor audit.Recorder,
) *Service {
	return &Service{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		geofenceRepo:   geofenceRepo,
		auditor:        auditor,
	}
}

// Submit records a clock-in on the first call of the day and completes the
// record with a clock-out on the second. A third call fails with
// ErrAlreadyClockedIn.
func (s *Service) Submit(ctx context.Context, req *attendance.SubmitAttendanceRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := employeeLocation(emp)

	clockIn, _ := time.Parse(time.RFC3339, req.ClockInTime)

	date, err := resolveDate(req.Date, clockIn, loc)
	if err != nil {
		return nil, err
	}

	var clockOut *time.Time
	if req.ClockOutTime != nil && *req.ClockOutTime != "" {
		t, _ := time.Parse(time.RFC3339, *req.ClockOutTime)
		clockOut = &t
	}
	if clockOut != nil && !clockOut.After(clockIn) {
		return nil, attendance.ErrInvalidTimeRange
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}

	if existing != nil {
		return s.completeDay(ctx, req, emp, existing, clockIn, clockOut)
	}

	inFence, err := s.checkGeofence(ctx, emp.BranchID, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	att := &attendance.Attendance{
		ID:                   uuid.New().String(),
		EmployeeID:           req.EmployeeID,
		Date:                 date,
		ClockIn:              &clockIn,
		IsInGeoFence:         inFence,
		Status:               attendance.StatusPresent,
		RegularizationStatus: attendance.RegularizationNone,
	}
	if req.Location != "" {
		location := req.Location
		att.ClockInLocation = &location
	}
	att.ClockInLatitude = req.Latitude
	att.ClockInLongitude = req.Longitude

	if clockOut != nil {
		att.ClockOut = clockOut
		att.ClockOutLocation = att.ClockInLocation
		att.ClockOutLatitude = req.OutLatitude
		att.ClockOutLongitude = req.OutLongitude
		att.WorkHours = attendance.RoundWorkHours(&clockIn, clockOut)
	}

	if err := s.attendanceRepo.Create(ctx, att); err != nil {
		return nil, err
	}

	s.auditor.Record(ctx, audit.EntityAttendance, att.ID, audit.ActionCreate, req.EmployeeID, "clock-in recorded", nil, att)

	return toResponse(att), nil
}

// completeDay fills in the clock-out half of an existing record. A record
// that already has a clock-out cannot be submitted again.
func (s *Service) completeDay(ctx context.Context, req *attendance.SubmitAttendanceRequest, emp *employee.Employee, existing *attendance.Attendance, clockIn time.Time, clockOut *time.Time) (*attendance.AttendanceResponse, error) {
	if existing.ClockOut != nil {
		return nil, attendance.ErrAlreadyClockedIn
	}

	out := clockIn
	if clockOut != nil {
		out = *clockOut
	}
	if existing.ClockIn != nil && !out.After(*existing.ClockIn) {
		if clockOut == nil {
			// Re-submitting the recorded clock-in before any clock-out is a
			// no-op; a different clock-in time is a duplicate attempt.
			if clockIn.Equal(*existing.ClockIn) {
				return toResponse(existing), nil
			}
			return nil, attendance.ErrAlreadyClockedIn
		}
		return nil, attendance.ErrInvalidTimeRange
	}

	before := *existing

	outLat, outLng := req.OutLatitude, req.OutLongitude
	if outLat == nil {
		outLat, outLng = req.Latitude, req.Longitude
	}

	if outLat != nil {
		inFence, err := s.checkGeofence(ctx, emp.BranchID, outLat, outLng)
		if err != nil {
			return nil, err
		}
		// The day counts as in-fence only if both punches were.
		existing.IsInGeoFence = existing.IsInGeoFence && inFence
	}

	existing.ClockOut = &out
	if req.Location != "" {
		location := req.Location
		existing.ClockOutLocation = &location
	}
	existing.ClockOutLatitude = outLat
	existing.ClockOutLongitude = outLng
	existing.WorkHours = attendance.RoundWorkHours(existing.ClockIn, &out)

	if err := s.attendanceRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.auditor.Record(ctx, audit.EntityAttendance, existing.ID, audit.ActionUpdate, req.EmployeeID, "clock-out recorded", &before, existing)

	return toResponse(existing), nil
}

// checkGeofence decides compliance for a punch. A branch with no active
// fences is unrestricted and always compliant. A fenced branch requires
// coordinates.
func (s *Service) checkGeofence(ctx context.Context, branchID string, lat, lng *float64) (bool, error) {
	fences, err := s.geofenceRepo.GetActiveByBranchID(ctx, branchID)
	if err != nil {
		return false, fmt.Errorf("failed to get geofences: %w", err)
	}
	if len(fences) == 0 {
		return true, nil
	}
	if lat == nil || lng == nil {
		return false, attendance.ErrLocationRequired
	}
	point := geofence.Point{Latitude: *lat, Longitude: *lng}
	return geofence.IsWithinAnyFence(point, fences), nil
}

func (s *Service) GetStatus(ctx context.Context, req *attendance.StatusRequest) (*attendance.StatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	date, err := resolveDate(req.Date, time.Now(), employeeLocation(emp))
	if err != nil {
		return nil, err
	}

	resp := &attendance.StatusResponse{State: attendance.DayStateNotCheckedIn}

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	if att != nil {
		resp.Attendance = toResponse(att)
		if att.ClockOut != nil {
			resp.State = attendance.DayStateCheckedOut
		} else if att.ClockIn != nil {
			resp.State = attendance.DayStateCheckedIn
		}
	}

	if req.Latitude != nil && req.Longitude != nil {
		fences, err := s.geofenceRepo.GetActiveByBranchID(ctx, emp.BranchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get geofences: %w", err)
		}
		within := len(fences) == 0 ||
			geofence.IsWithinAnyFence(geofence.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}, fences)
		resp.WithinGeofence = &within
	}

	return resp, nil
}

func (s *Service) ListHistory(ctx context.Context, employeeID string, filter *attendance.HistoryFilter) (*attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, total, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toListResponse(records, total, filter.Page, filter.Limit), nil
}

func (s *Service) List(ctx context.Context, filter *attendance.Filter) (*attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toListResponse(records, total, filter.Page, filter.Limit), nil
}

func (s *Service) RequestRegularization(ctx context.Context, req *attendance.RegularizationRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return nil, err
	}
	if att.EmployeeID != req.EmployeeID {
		return nil, attendance.ErrNotOwner
	}
	if att.RegularizationStatus == attendance.RegularizationPending {
		return nil, attendance.ErrAlreadyRequested
	}

	before := *att

	reason := req.Reason
	att.IsRegularizationRequested = true
	att.RegularizationReason = &reason
	att.RegularizationStatus = attendance.RegularizationPending
	att.RegularizationApprovedBy = nil
	att.RegularizationDate = nil

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.auditor.Record(ctx, audit.EntityAttendance, att.ID, audit.ActionUpdate, req.EmployeeID, "regularization requested", &before, att)

	return toResponse(att), nil
}

func (s *Service) ProcessRegularization(ctx context.Context, req *attendance.ProcessRegularizationRequest) (*attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	att, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return nil, err
	}
	if att.RegularizationStatus != attendance.RegularizationPending {
		return nil, attendance.ErrNoPendingRequest
	}

	before := *att
	now := time.Now().UTC()
	action := audit.ActionReject

	if req.Decision == "approved" {
		action = audit.ActionApprove

		clockIn := att.ClockIn
		clockOut := att.ClockOut
		if req.ClockInTime != nil && *req.ClockInTime != "" {
			t, _ := time.Parse(time.RFC3339, *req.ClockInTime)
			clockIn = &t
		}
		if req.ClockOutTime != nil && *req.ClockOutTime != "" {
			t, _ := time.Parse(time.RFC3339, *req.ClockOutTime)
			clockOut = &t
		}
		if clockIn != nil && clockOut != nil && !clockOut.After(*clockIn) {
			return nil, attendance.ErrInvalidTimeRange
		}

		att.ClockIn = clockIn
		att.ClockOut = clockOut
		att.WorkHours = attendance.RoundWorkHours(clockIn, clockOut)
		att.Status = attendance.StatusPresent
		att.RegularizationStatus = attendance.RegularizationApproved
	} else {
		att.RegularizationStatus = attendance.RegularizationRejected
	}

	att.RegularizationApprovedBy = &req.ReviewerID
	att.RegularizationDate = &now

	if err := s.attendanceRepo.Update(ctx, att); err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.auditor.Record(ctx, audit.EntityAttendance, att.ID, action, req.ReviewerID, "regularization "+string(att.RegularizationStatus), &before, att)

	return toResponse(att), nil
}

// MarkAbsentees inserts absent records for employees without any record on
// the given date. Run by the scheduler after the day closes.
func (s *Service) MarkAbsentees(ctx context.Context, date time.Time) (int, error) {
	ids, err := s.employeeRepo.ListActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	missing, err := s.attendanceRepo.ListMissingForDate(ctx, ids, date)
	if err != nil {
		return 0, fmt.Errorf("failed to find missing attendance: %w", err)
	}

	marked := 0
	for _, employeeID := range missing {
		att := &attendance.Attendance{
			ID:                   uuid.New().String(),
			EmployeeID:           employeeID,
			Date:                 date,
			IsInGeoFence:         true,
			Status:               attendance.StatusAbsent,
			RegularizationStatus: attendance.RegularizationNone,
		}
		if err := s.attendanceRepo.Create(ctx, att); err != nil {
			if errors.Is(err, attendance.ErrAlreadyClockedIn) {
				continue
			}
			return marked, fmt.Errorf("failed to mark absent: %w", err)
		}
		marked++
	}

	return marked, nil
}

func employeeLocation(emp *employee.Employee) *time.Location {
	loc, err := time.LoadLocation(emp.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// resolveDate picks the attendance date: the explicit date when supplied,
// otherwise the submission instant viewed in the employee's timezone.
func resolveDate(explicit *string, at time.Time, loc *time.Location) (time.Time, error) {
	if explicit != nil && *explicit != "" {
		d, ok := validator.IsValidDate(*explicit)
		if !ok {
			return time.Time{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			}}
		}
		return d, nil
	}
	local := at.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC), nil
}

func toResponse(att *attendance.Attendance) *attendance.AttendanceResponse {
	resp := &attendance.AttendanceResponse{
		ID:                        att.ID,
		EmployeeID:                att.EmployeeID,
		EmployeeName:              att.EmployeeName,
		Date:                      att.Date.Format("2006-01-02"),
		ClockInLocation:           att.ClockInLocation,
		ClockOutLocation:          att.ClockOutLocation,
		ClockInLatitude:           att.ClockInLatitude,
		ClockInLongitude:          att.ClockInLongitude,
		ClockOutLatitude:          att.ClockOutLatitude,
		ClockOutLongitude:         att.ClockOutLongitude,
		IsInGeoFence:              att.IsInGeoFence,
		Status:                    string(att.Status),
		WorkHours:                 att.WorkHours,
		IsRegularizationRequested: att.IsRegularizationRequested,
		RegularizationStatus:      string(att.RegularizationStatus),
		RegularizationReason:      att.RegularizationReason,
		RegularizationApprovedBy:  att.RegularizationApprovedBy,
		CreatedAt:                 att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                 att.UpdatedAt.Format(time.RFC3339),
	}
	if att.ClockIn != nil {
		v := att.ClockIn.Format(time.RFC3339)
		resp.ClockInTime = &v
	}
	if att.ClockOut != nil {
		v := att.ClockOut.Format(time.RFC3339)
		resp.ClockOutTime = &v
	}
	if att.RegularizationDate != nil {
		v := att.RegularizationDate.Format(time.RFC3339)
		resp.RegularizationDate = &v
	}
	return resp
}

func toListResponse(records []attendance.Attendance, total int64, page, limit int) *attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, *toResponse(&records[i]))
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}
}
