// Package events defines the topics and payloads this service publishes.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics.
const (
	TopicUserEvents  = "user.events"
	TopicRouteEvents = "route.events"
	TopicPlaceEvents = "place.events"
)

// Event types.
const (
	UserRegistered = "travel.user.registered"
	RouteCreated   = "travel.route.created"
	RouteDeleted   = "travel.route.deleted"
	PlaceCreated   = "travel.place.created"
)

// UserRegisteredEvent is published when a traveler signs up.
type UserRegisteredEvent struct {
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RouteCreatedEvent is published when a traveler saves a route.
type RouteCreatedEvent struct {
	RouteID    uuid.UUID `json:"route_id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	StartName  string    `json:"start_name"`
	EndName    string    `json:"end_name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RouteDeletedEvent is published when a saved route is removed.
type RouteDeletedEvent struct {
	RouteID    uuid.UUID `json:"route_id"`
	UserID     uuid.UUID `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PlaceCreatedEvent is published when a traveler adds a place.
type PlaceCreatedEvent struct {
	PlaceID    uuid.UUID `json:"place_id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}
