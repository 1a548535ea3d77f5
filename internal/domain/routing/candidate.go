// Package routing implements route-option selection and navigation
// instruction synthesis over candidate routes returned by an external
// routing provider. Everything here is pure computation over in-memory
// inputs: no I/O, no shared state, safe for concurrent use.
package routing

import "encoding/json"

// Maneuver describes the directed action taken at the start of a step.
type Maneuver struct {
	// Type is the provider's maneuver tag: depart, arrive, turn, continue,
	// merge, roundabout, and so on.
	Type string `json:"type"`
	// Modifier is an optional direction such as left, right or straight.
	Modifier string `json:"modifier,omitempty"`
	// Location is the [longitude, latitude] of the maneuver point.
	Location []float64 `json:"location,omitempty"`
}

// ManeuverStep is one segment of a candidate route, in itinerary order.
// Steps are produced by the routing provider and are read-only here.
type ManeuverStep struct {
	Distance float64         `json:"distance"` // meters
	Duration float64         `json:"duration"` // seconds
	Name     string          `json:"name,omitempty"`
	Maneuver Maneuver        `json:"maneuver"`
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

// CandidateRoute is one complete path between two points. A planning request
// may yield several candidates (alternatives); selection chooses one and
// never mutates any of them.
type CandidateRoute struct {
	Distance float64         `json:"distance"` // meters
	Duration float64         `json:"duration"` // seconds
	Geometry json.RawMessage `json:"geometry,omitempty"`
	Steps    []ManeuverStep  `json:"steps,omitempty"`
}

// NavigationStep is the derived, display-ready form of a ManeuverStep.
type NavigationStep struct {
	Instruction      string  `json:"instruction"`
	Distance         float64 `json:"distance"` // meters
	Duration         float64 `json:"duration"` // seconds
	ManeuverType     string  `json:"maneuver_type"`
	ManeuverModifier string  `json:"maneuver_modifier,omitempty"`
	RoadName         string  `json:"road_name,omitempty"`
}

// Summary is a selected route reduced to presentation units.
type Summary struct {
	DistanceKm      float64          `json:"distance_km"`
	DurationMinutes float64          `json:"duration_minutes"`
	Profile         TransportProfile `json:"profile"`
}
