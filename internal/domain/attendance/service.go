package attendance

import "context"

type Service interface {
	// Submit records a clock-in, or completes the day's record with a
	// clock-out when one already exists without a clock-out time.
	Submit(ctx context.Context, req *SubmitAttendanceRequest) (*AttendanceResponse, error)

	GetStatus(ctx context.Context, req *StatusRequest) (*StatusResponse, error)

	ListHistory(ctx context.Context, employeeID string, filter *HistoryFilter) (*ListAttendanceResponse, error)
	List(ctx context.Context, filter *Filter) (*ListAttendanceResponse, error)

	RequestRegularization(ctx context.Context, req *RegularizationRequest) (*AttendanceResponse, error)
	ProcessRegularization(ctx context.Context, req *ProcessRegularizationRequest) (*AttendanceResponse, error)
}
