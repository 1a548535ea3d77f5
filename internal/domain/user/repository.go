package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// VisitedCountry records a country a traveler has marked as visited.
type VisitedCountry struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	CountryCode string    `json:"country_code"` // ISO 3166-1 alpha-2
	CountryName string    `json:"country_name"`
	VisitedAt   time.Time `json:"visited_at"`
}

// UserRepository defines the persistence contract for user aggregates.
type UserRepository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// AddVisitedCountry records a visited country for a user.
	AddVisitedCountry(ctx context.Context, vc *VisitedCountry) error

	// ListVisitedCountries returns a user's visited countries, most recent first.
	ListVisitedCountries(ctx context.Context, userID uuid.UUID) ([]VisitedCountry, error)

	// RemoveVisitedCountry deletes a visited-country record owned by the user.
	RemoveVisitedCountry(ctx context.Context, userID uuid.UUID, countryCode string) error
}
