package leave

import "context"

type Service interface {
	Apply(ctx context.Context, req *ApplyRequest) (*RequestResponse, error)
	Review(ctx context.Context, req *ReviewRequest) (*RequestResponse, error)

	// Withdraw cancels the caller's own pending request.
	Withdraw(ctx context.Context, requestID, employeeID string) (*RequestResponse, error)

	// Remove deletes the caller's own request outright. Only cancelled and
	// rejected requests are deletable.
	Remove(ctx context.Context, requestID, employeeID string) error

	GetRequest(ctx context.Context, requestID string) (*RequestResponse, error)
	ListRequests(ctx context.Context, filter *RequestFilter) (*ListRequestResponse, error)

	GetBalances(ctx context.Context, employeeID string, year int) (*ListBalanceResponse, error)
	UpsertBalance(ctx context.Context, req *UpsertBalanceRequest) (*BalanceResponse, error)
}
