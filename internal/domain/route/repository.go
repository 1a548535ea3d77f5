package route

import (
	"context"

	"github.com/google/uuid"
)

// RouteRepository defines the persistence contract for saved route aggregates.
type RouteRepository interface {
	// FindByID retrieves a route by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Route, error)

	// FindByUserID retrieves routes belonging to a user with pagination,
	// newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Route, int64, error)

	// CountByUser returns how many routes a user has saved.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save persists a new route.
	Save(ctx context.Context, route *Route) error

	// Update persists changes to an existing route.
	Update(ctx context.Context, route *Route) error

	// Delete removes a route permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
