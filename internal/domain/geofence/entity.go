package geofence

import "time"

// GeoFence is a circular boundary around a branch office. A branch may have
// many fences; inactive fences are ignored by validation.
type GeoFence struct {
	ID              string
	BranchID        string
	Name            string
	CenterLatitude  float64
	CenterLongitude float64
	RadiusMeters    float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Point is a position in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}
