package geofence

import "math"

const earthRadiusMeters = 6371000

// HaversineDistance computes the great-circle distance between two
// coordinates in meters, on a spherical Earth model.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// IsWithinAnyFence reports whether p lies inside at least one active fence.
// A point exactly on the radius counts as inside. An empty fence set returns
// false; the caller decides what an empty set means for its branch.
func IsWithinAnyFence(p Point, fences []GeoFence) bool {
	for _, fence := range fences {
		if !fence.IsActive {
			continue
		}

		distance := HaversineDistance(p.Latitude, p.Longitude, fence.CenterLatitude, fence.CenterLongitude)
		if distance <= fence.RadiusMeters {
			return true
		}
	}
	return false
}
