package geofence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// offsetNorth returns a point d meters due north of the given point.
func offsetNorth(p Point, d float64) Point {
	return Point{
		Latitude:  p.Latitude + (d/earthRadiusMeters)*(180.0/math.Pi),
		Longitude: p.Longitude,
	}
}

func TestHaversineDistance_SamePoint(t *testing.T) {
	d := HaversineDistance(12.9716, 77.5946, 12.9716, 77.5946)
	assert.Equal(t, 0.0, d)
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	d1 := HaversineDistance(12.9716, 77.5946, 13.0827, 80.2707)
	d2 := HaversineDistance(13.0827, 80.2707, 12.9716, 77.5946)
	assert.InDelta(t, d1, d2, 1e-6)
}

func TestHaversineDistance_KnownOffset(t *testing.T) {
	center := Point{Latitude: 12.9716, Longitude: 77.5946}
	p := offsetNorth(center, 80)

	d := HaversineDistance(center.Latitude, center.Longitude, p.Latitude, p.Longitude)
	assert.InDelta(t, 80, d, 0.5)
}

func TestIsWithinAnyFence_InsideRadius(t *testing.T) {
	center := Point{Latitude: 12.9716, Longitude: 77.5946}
	fences := []GeoFence{{
		ID:              "fence-1",
		BranchID:        "branch-1",
		CenterLatitude:  center.Latitude,
		CenterLongitude: center.Longitude,
		RadiusMeters:    100,
		IsActive:        true,
	}}

	assert.True(t, IsWithinAnyFence(offsetNorth(center, 80), fences))
	assert.False(t, IsWithinAnyFence(offsetNorth(center, 150), fences))
}

func TestIsWithinAnyFence_BoundaryInclusive(t *testing.T) {
	fence := GeoFence{
		CenterLatitude:  12.9716,
		CenterLongitude: 77.5946,
		IsActive:        true,
	}
	p := offsetNorth(Point{Latitude: fence.CenterLatitude, Longitude: fence.CenterLongitude}, 100)

	// Set the radius to the exact measured distance so the point sits on the boundary.
	fence.RadiusMeters = HaversineDistance(p.Latitude, p.Longitude, fence.CenterLatitude, fence.CenterLongitude)

	assert.True(t, IsWithinAnyFence(p, []GeoFence{fence}))
}

func TestIsWithinAnyFence_IgnoresInactive(t *testing.T) {
	center := Point{Latitude: 12.9716, Longitude: 77.5946}
	fences := []GeoFence{{
		CenterLatitude:  center.Latitude,
		CenterLongitude: center.Longitude,
		RadiusMeters:    100,
		IsActive:        false,
	}}

	assert.False(t, IsWithinAnyFence(center, fences))
}

func TestIsWithinAnyFence_AnyOfMultiple(t *testing.T) {
	center := Point{Latitude: 12.9716, Longitude: 77.5946}
	far := GeoFence{CenterLatitude: 13.0827, CenterLongitude: 80.2707, RadiusMeters: 50, IsActive: true}
	near := GeoFence{CenterLatitude: center.Latitude, CenterLongitude: center.Longitude, RadiusMeters: 100, IsActive: true}

	assert.True(t, IsWithinAnyFence(offsetNorth(center, 40), []GeoFence{far, near}))
}

func TestIsWithinAnyFence_EmptySet(t *testing.T) {
	assert.False(t, IsWithinAnyFence(Point{Latitude: 12.9716, Longitude: 77.5946}, nil))
}
