// Package route holds the saved-route aggregate: a named pair of waypoints
// a traveler keeps for later planning.
package route

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/domain"
	"github.com/tripwise/service-travel/internal/domain/geo"
)

// Waypoint is a named location, the start or end of a saved route.
type Waypoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the waypoint's coordinates as a geo.Point.
func (w Waypoint) Point() geo.Point {
	return geo.Point{Latitude: w.Latitude, Longitude: w.Longitude}
}

// DirectEstimate is the degraded distance/time estimate computed without a
// road network. RouteType distinguishes it from provider-backed results.
type DirectEstimate struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
	RouteType       string  `json:"route_type"`
}

// RouteTypeDirect tags estimates computed as a straight line; routed results
// from the provider are tagged by the planning layer instead.
const RouteTypeDirect = "direct"

// Route is the aggregate root for a traveler's saved route.
type Route struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	description string
	start       Waypoint
	end         Waypoint
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRoute creates a saved route after validating its name and coordinates.
func NewRoute(userID uuid.UUID, name, description string, start, end Waypoint) (*Route, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("route name is required")
	}
	if start.Name == "" || end.Name == "" {
		return nil, domain.NewValidationError("start and end point names are required")
	}
	if err := geo.ValidatePoint(start.Point()); err != nil {
		return nil, err
	}
	if err := geo.ValidatePoint(end.Point()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Route{
		id:          uuid.New(),
		userID:      userID,
		name:        name,
		description: description,
		start:       start,
		end:         end,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Route from persistence data (no validation).
func Reconstruct(
	id, userID uuid.UUID,
	name, description string,
	start, end Waypoint,
	createdAt, updatedAt time.Time,
) *Route {
	return &Route{
		id:          id,
		userID:      userID,
		name:        name,
		description: description,
		start:       start,
		end:         end,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (r *Route) ID() uuid.UUID        { return r.id }
func (r *Route) UserID() uuid.UUID    { return r.userID }
func (r *Route) Name() string         { return r.name }
func (r *Route) Description() string  { return r.description }
func (r *Route) Start() Waypoint      { return r.start }
func (r *Route) End() Waypoint        { return r.end }
func (r *Route) CreatedAt() time.Time { return r.createdAt }
func (r *Route) UpdatedAt() time.Time { return r.updatedAt }

// --- Behavior ---

// Update patches the fields that are provided (non-nil).
func (r *Route) Update(name, description *string, start, end *Waypoint) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return domain.NewValidationError("route name cannot be empty")
		}
		r.name = *name
	}
	if description != nil {
		r.description = *description
	}
	if start != nil {
		if err := geo.ValidatePoint(start.Point()); err != nil {
			return err
		}
		r.start = *start
	}
	if end != nil {
		if err := geo.ValidatePoint(end.Point()); err != nil {
			return err
		}
		r.end = *end
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// DirectDistance computes the straight-line estimate between the route's
// endpoints: haversine distance and the flat-speed time estimate.
func (r *Route) DirectDistance() DirectEstimate {
	return DirectEstimateBetween(r.start.Point(), r.end.Point())
}

// DirectEstimateBetween computes the straight-line estimate for an arbitrary
// pair of points, rounded for presentation (km to two decimals, whole
// minutes).
func DirectEstimateBetween(from, to geo.Point) DirectEstimate {
	distanceKm := geo.Haversine(from, to)
	return DirectEstimate{
		DistanceKm:      roundTo2(distanceKm),
		DurationMinutes: geo.EstimateTravelMinutes(distanceKm),
		RouteType:       RouteTypeDirect,
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
