package geofence

import "context"

// Repository provides the branch → fence-set lookup consumed during
// attendance validation. Fence administration lives with the branch
// management collaborator.
type Repository interface {
	// GetActiveByBranchID retrieves the active fences for a branch.
	GetActiveByBranchID(ctx context.Context, branchID string) ([]GeoFence, error)
}
