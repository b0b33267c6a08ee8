// Package proximity filters shops by great-circle distance from an origin.
package proximity

import (
	"math"

	"github.com/spec-kit/shop-directory/internal/domain"
)

// EarthRadiusMeters is the WGS 84 equatorial radius.
const EarthRadiusMeters = 6378137.0

// DistanceMeters returns the haversine distance between a and b, rounded to
// the nearest meter.
func DistanceMeters(a, b domain.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	dLat := lat2 - lat1
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h a hair past 1 for antipodal points
	h = math.Min(1, h)

	return math.Round(2 * EarthRadiusMeters * math.Asin(math.Sqrt(h)))
}

// DistanceKm is DistanceMeters expressed in kilometers.
func DistanceKm(a, b domain.Coordinates) float64 {
	return DistanceMeters(a, b) / 1000
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
