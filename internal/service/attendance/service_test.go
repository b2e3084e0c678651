package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Durgaram26/hrms-sub000/internal/domain/attendance"
	"github.com/Durgaram26/hrms-sub000/internal/domain/audit"
	"github.com/Durgaram26/hrms-sub000/internal/domain/employee"
	"github.com/Durgaram26/hrms-sub000/internal/domain/geofence"
)

// fakeAttendanceRepo is an in-memory repository guarding the same
// (employee_id, date) uniqueness the database enforces.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	byID    map[string]*attendance.Attendance
	byKey   map[string]string
	missing []string
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		byID:  make(map[string]*attendance.Attendance),
		byKey: make(map[string]string),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att *attendance.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := dayKey(att.EmployeeID, att.Date)
	if _, exists := f.byKey[key]; exists {
		return attendance.ErrAlreadyClockedIn
	}

	now := time.Now().UTC()
	att.CreatedAt = now
	att.UpdatedAt = now

	stored := *att
	f.byID[att.ID] = &stored
	f.byKey[key] = att.ID
	return nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att *attendance.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[att.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	att.UpdatedAt = time.Now().UTC()
	stored := *att
	f.byID[att.ID] = &stored
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	att, ok := f.byID[id]
	if !ok {
		return nil, attendance.ErrAttendanceNotFound
	}
	cp := *att
	return &cp, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byKey[dayKey(employeeID, date)]
	if !ok {
		return nil, attendance.ErrAttendanceNotFound
	}
	cp := *f.byID[id]
	return &cp, nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter *attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, att := range f.byID {
		if att.EmployeeID == employeeID {
			result = append(result, *att)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter *attendance.Filter) ([]attendance.Attendance, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []attendance.Attendance
	for _, att := range f.byID {
		result = append(result, *att)
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceRepo) ListMissingForDate(ctx context.Context, employeeIDs []string, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var missing []string
	for _, id := range employeeIDs {
		if _, ok := f.byKey[dayKey(id, date)]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

var _ employee.Repository = (*fakeEmployeeRepo)(nil)

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.employees))
	for id := range f.employees {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeGeofenceRepo struct {
	fences map[string][]geofence.GeoFence
}

func (f *fakeGeofenceRepo) GetActiveByBranchID(ctx context.Context, branchID string) ([]geofence.GeoFence, error) {
	return f.fences[branchID], nil
}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, entityType audit.EntityType, entityID string, action audit.Action, actorID, message string, before, after any) {
}

const (
	testEmployeeID = "emp-1"
	testBranchID   = "branch-1"
)

func newTestService(fences []geofence.GeoFence) (*Service, *fakeAttendanceRepo) {
	attendanceRepo := newFakeAttendanceRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		testEmployeeID: {
			ID:       testEmployeeID,
			UserID:   "user-1",
			FullName: "Asha Rao",
			Email:    "asha@example.com",
			BranchID: testBranchID,
			Timezone: "UTC",
		},
	}}
	geofenceRepo := &fakeGeofenceRepo{fences: map[string][]geofence.GeoFence{
		testBranchID: fences,
	}}
	svc := NewService(attendanceRepo, employeeRepo, geofenceRepo, noopRecorder{})
	return svc, attendanceRepo
}

func officeFence() geofence.GeoFence {
	return geofence.GeoFence{
		ID:              "fence-1",
		BranchID:        testBranchID,
		Name:            "HQ",
		CenterLatitude:  12.9716,
		CenterLongitude: 77.5946,
		RadiusMeters:    100,
		IsActive:        true,
	}
}

func ptr[T any](v T) *T { return &v }

func TestSubmitClockInInsideFence(t *testing.T) {
	svc, _ := newTestService([]geofence.GeoFence{officeFence()})

	resp, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "Bangalore HQ",
		Latitude:    ptr(12.9716),
		Longitude:   ptr(77.5946),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsInGeoFence)
	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Nil(t, resp.WorkHours)
}

func TestSubmitClockInOutsideFenceStillRecorded(t *testing.T) {
	svc, _ := newTestService([]geofence.GeoFence{officeFence()})

	// Roughly 1.1km north of the fence center.
	resp, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "Somewhere else",
		Latitude:    ptr(12.9816),
		Longitude:   ptr(77.5946),
	})
	require.NoError(t, err)

	assert.False(t, resp.IsInGeoFence)
	assert.Equal(t, "present", resp.Status)
}

func TestSubmitNoFencesIsUnrestricted(t *testing.T) {
	svc, _ := newTestService(nil)

	resp, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "Remote",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsInGeoFence)
}

func TestSubmitFencedBranchRequiresCoordinates(t *testing.T) {
	svc, _ := newTestService([]geofence.GeoFence{officeFence()})

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "Bangalore HQ",
	})
	assert.ErrorIs(t, err, attendance.ErrLocationRequired)
}

func TestSubmitClockOutBeforeClockIn(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:   testEmployeeID,
		ClockInTime:  "2025-03-10T09:00:00Z",
		ClockOutTime: ptr("2025-03-10T08:00:00Z"),
		Location:     "HQ",
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidTimeRange)
}

func TestSubmitSecondCallCompletesDay(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	resp, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:   testEmployeeID,
		ClockInTime:  "2025-03-10T09:00:00Z",
		ClockOutTime: ptr("2025-03-10T17:30:00Z"),
		Location:     "HQ",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WorkHours)
	assert.Equal(t, 8.5, *resp.WorkHours)
	require.NotNil(t, resp.ClockOutTime)
}

func TestSubmitSameDataBeforeClockOutIsIdempotent(t *testing.T) {
	svc, _ := newTestService(nil)

	first, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	replay, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, replay.ID)
	assert.Nil(t, replay.ClockOutTime)
	assert.Nil(t, replay.WorkHours)

	// An earlier clock-in time is not a replay of the recorded one.
	_, err = svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T08:00:00Z",
		Location:    "HQ",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestSubmitThirdCallRejected(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:   testEmployeeID,
		ClockInTime:  "2025-03-10T09:00:00Z",
		ClockOutTime: ptr("2025-03-10T17:00:00Z"),
		Location:     "HQ",
	})
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T18:00:00Z",
		Location:    "HQ",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestSubmitConcurrentDuplicates(t *testing.T) {
	svc, repo := newTestService(nil)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
				EmployeeID:  testEmployeeID,
				ClockInTime: "2025-03-10T09:00:00Z",
				Location:    "HQ",
			})
		}(i)
	}
	wg.Wait()

	created := 0
	for _, err := range errs {
		if err == nil {
			created++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
		}
	}
	assert.Equal(t, 1, created)
	assert.Len(t, repo.byID, 1)
}

func TestGetStatusTransitions(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	date := "2025-03-10"

	status, err := svc.GetStatus(ctx, &attendance.StatusRequest{EmployeeID: testEmployeeID, Date: &date})
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateNotCheckedIn, status.State)

	_, err = svc.Submit(ctx, &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	status, err = svc.GetStatus(ctx, &attendance.StatusRequest{EmployeeID: testEmployeeID, Date: &date})
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateCheckedIn, status.State)

	_, err = svc.Submit(ctx, &attendance.SubmitAttendanceRequest{
		EmployeeID:   testEmployeeID,
		ClockInTime:  "2025-03-10T09:00:00Z",
		ClockOutTime: ptr("2025-03-10T17:00:00Z"),
		Location:     "HQ",
	})
	require.NoError(t, err)

	status, err = svc.GetStatus(ctx, &attendance.StatusRequest{EmployeeID: testEmployeeID, Date: &date})
	require.NoError(t, err)
	assert.Equal(t, attendance.DayStateCheckedOut, status.State)
}

func TestGetStatusReportsFenceCompliance(t *testing.T) {
	svc, _ := newTestService([]geofence.GeoFence{officeFence()})
	date := "2025-03-10"

	status, err := svc.GetStatus(context.Background(), &attendance.StatusRequest{
		EmployeeID: testEmployeeID,
		Date:       &date,
		Latitude:   ptr(12.9716),
		Longitude:  ptr(77.5946),
	})
	require.NoError(t, err)
	require.NotNil(t, status.WithinGeofence)
	assert.True(t, *status.WithinGeofence)
}

func TestRequestRegularization(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T11:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	result, err := svc.RequestRegularization(ctx, &attendance.RegularizationRequest{
		AttendanceID: resp.ID,
		EmployeeID:   testEmployeeID,
		Reason:       "Forgot to clock in on arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", result.RegularizationStatus)
	assert.True(t, result.IsRegularizationRequested)

	// Only the owner may request.
	_, err = svc.RequestRegularization(ctx, &attendance.RegularizationRequest{
		AttendanceID: resp.ID,
		EmployeeID:   "someone-else",
		Reason:       "nope",
	})
	assert.ErrorIs(t, err, attendance.ErrNotOwner)

	// A second request while one is pending is rejected.
	_, err = svc.RequestRegularization(ctx, &attendance.RegularizationRequest{
		AttendanceID: resp.ID,
		EmployeeID:   testEmployeeID,
		Reason:       "again",
	})
	assert.ErrorIs(t, err, attendance.ErrAlreadyRequested)

	stored, err := repo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.RegularizationPending, stored.RegularizationStatus)
}

func TestProcessRegularizationApproveWithCorrections(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, &attendance.SubmitAttendanceRequest{
		EmployeeID:   testEmployeeID,
		ClockInTime:  "2025-03-10T11:00:00Z",
		ClockOutTime: ptr("2025-03-10T17:00:00Z"),
		Location:     "HQ",
	})
	require.NoError(t, err)

	_, err = svc.RequestRegularization(ctx, &attendance.RegularizationRequest{
		AttendanceID: resp.ID,
		EmployeeID:   testEmployeeID,
		Reason:       "Badge reader was down, arrived at 9",
	})
	require.NoError(t, err)

	result, err := svc.ProcessRegularization(ctx, &attendance.ProcessRegularizationRequest{
		AttendanceID: resp.ID,
		ReviewerID:   "hr-1",
		Decision:     "approved",
		ClockInTime:  ptr("2025-03-10T09:00:00Z"),
	})
	require.NoError(t, err)

	assert.Equal(t, "approved", result.RegularizationStatus)
	require.NotNil(t, result.WorkHours)
	assert.Equal(t, 8.0, *result.WorkHours)
	require.NotNil(t, result.RegularizationApprovedBy)
	assert.Equal(t, "hr-1", *result.RegularizationApprovedBy)

	// Already decided.
	_, err = svc.ProcessRegularization(ctx, &attendance.ProcessRegularizationRequest{
		AttendanceID: resp.ID,
		ReviewerID:   "hr-1",
		Decision:     "rejected",
	})
	assert.ErrorIs(t, err, attendance.ErrNoPendingRequest)
}

func TestProcessRegularizationReject(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	resp, err := svc.Submit(ctx, &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T11:00:00Z",
		Location:    "HQ",
	})
	require.NoError(t, err)

	_, err = svc.RequestRegularization(ctx, &attendance.RegularizationRequest{
		AttendanceID: resp.ID,
		EmployeeID:   testEmployeeID,
		Reason:       "Traffic",
	})
	require.NoError(t, err)

	result, err := svc.ProcessRegularization(ctx, &attendance.ProcessRegularizationRequest{
		AttendanceID: resp.ID,
		ReviewerID:   "hr-1",
		Decision:     "rejected",
	})
	require.NoError(t, err)
	assert.Equal(t, "rejected", result.RegularizationStatus)
}

func TestMarkAbsentees(t *testing.T) {
	svc, repo := newTestService(nil)
	ctx := context.Background()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	marked, err := svc.MarkAbsentees(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	stored, err := repo.GetByEmployeeAndDate(ctx, testEmployeeID, date)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, stored.Status)

	// Second run finds nothing to mark.
	marked, err = svc.MarkAbsentees(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "not-a-timestamp",
		Location:    "HQ",
	})
	require.Error(t, err)

	_, err = svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  testEmployeeID,
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
		Latitude:    ptr(95.0),
		Longitude:   ptr(77.0),
	})
	require.Error(t, err)
}

func TestWorkHoursRounding(t *testing.T) {
	clockIn := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(7*time.Hour + 50*time.Minute)

	hours := attendance.RoundWorkHours(&clockIn, &clockOut)
	require.NotNil(t, hours)
	assert.Equal(t, 7.83, *hours)

	assert.Nil(t, attendance.RoundWorkHours(nil, &clockOut))
	assert.Nil(t, attendance.RoundWorkHours(&clockIn, nil))
}

func TestSubmitUnknownEmployee(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.Submit(context.Background(), &attendance.SubmitAttendanceRequest{
		EmployeeID:  uuid.New().String(),
		ClockInTime: "2025-03-10T09:00:00Z",
		Location:    "HQ",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
