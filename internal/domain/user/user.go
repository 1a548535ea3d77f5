package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/domain"
)

// User is the aggregate root for accounts and traveler profiles.
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	role         string
	isActive     bool
	avatarURL    string
	bio          string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new active user account.
func NewUser(email, name, passwordHash, role string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	email, name, passwordHash, role string,
	isActive bool,
	avatarURL, bio string,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		avatarURL:    avatarURL,
		bio:          bio,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() string         { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) AvatarURL() string    { return u.avatarURL }
func (u *User) Bio() string          { return u.bio }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// --- Behavior ---

// UpdateProfile patches the profile fields that are provided (non-nil).
func (u *User) UpdateProfile(name, bio, avatarURL *string) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return domain.NewValidationError("name cannot be empty")
		}
		u.name = *name
	}
	if bio != nil {
		u.bio = *bio
	}
	if avatarURL != nil {
		u.avatarURL = *avatarURL
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

// Deactivate disables the account without deleting it.
func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now().UTC()
}
