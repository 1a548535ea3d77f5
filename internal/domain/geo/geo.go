// Package geo provides the geographic primitives shared by route planning:
// coordinate values, great-circle distance, and the direct-line travel time
// estimate used when no road-network route is available.
package geo

import (
	"math"

	"github.com/tripwise/service-travel/internal/domain"
)

const (
	// earthRadiusKm is the mean Earth radius used for great-circle distance.
	earthRadiusKm = 6371.0

	// fallbackSpeedKmh is the flat average speed assumed by the direct-line
	// time estimate. Deliberately crude; never used once a routed duration
	// exists.
	fallbackSpeedKmh = 80.0
)

// Point is an immutable coordinate pair in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Haversine returns the great-circle distance between two points in
// kilometers. It is symmetric, never negative, and returns 0 for identical
// points. Inputs are assumed to be within valid coordinate ranges.
func Haversine(p1, p2 Point) float64 {
	lat1 := degreesToRadians(p1.Latitude)
	lat2 := degreesToRadians(p2.Latitude)
	dLat := degreesToRadians(p2.Latitude - p1.Latitude)
	dLon := degreesToRadians(p2.Longitude - p1.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return earthRadiusKm * c
}

// EstimateTravelMinutes returns a whole-minute travel time estimate for a
// direct-line distance, assuming a flat 80 km/h. Returns 0 for distances
// of zero or less.
func EstimateTravelMinutes(distanceKm float64) int {
	if distanceKm <= 0 {
		return 0
	}
	return int(distanceKm / fallbackSpeedKmh * 60)
}

// ValidatePoint checks that a point lies within valid coordinate ranges.
// The request layer calls this before any distance or routing computation.
func ValidatePoint(p Point) error {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) || p.Latitude < -90 || p.Latitude > 90 {
		return domain.NewValidationError("latitude must be between -90 and 90")
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) || p.Longitude < -180 || p.Longitude > 180 {
		return domain.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
