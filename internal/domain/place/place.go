// Package place holds the traveler-created place aggregate and its images.
package place

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/domain"
	"github.com/tripwise/service-travel/internal/domain/geo"
)

// PlaceImage is an image attached to a user place.
type PlaceImage struct {
	ID        uuid.UUID `json:"id"`
	PlaceID   uuid.UUID `json:"place_id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPlaceImage creates an image record for a place.
func NewPlaceImage(placeID uuid.UUID, imageURL, caption string, isPrimary bool) (*PlaceImage, error) {
	if placeID == uuid.Nil {
		return nil, domain.NewValidationError("place ID is required")
	}
	if imageURL == "" {
		return nil, domain.NewValidationError("image URL is required")
	}
	return &PlaceImage{
		ID:        uuid.New(),
		PlaceID:   placeID,
		ImageURL:  imageURL,
		Caption:   caption,
		IsPrimary: isPrimary,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UserPlace is the aggregate root for a place a traveler wants to share:
// a restaurant, attraction, viewpoint and so on.
type UserPlace struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	description string
	latitude    float64
	longitude   float64
	website     string
	category    string
	isPublic    bool
	isApproved  bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUserPlace creates a private, unapproved place with validated fields.
func NewUserPlace(userID uuid.UUID, name, description string, latitude, longitude float64, website, category string) (*UserPlace, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("place name is required")
	}
	if err := geo.ValidatePoint(geo.Point{Latitude: latitude, Longitude: longitude}); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &UserPlace{
		id:          uuid.New(),
		userID:      userID,
		name:        name,
		description: description,
		latitude:    latitude,
		longitude:   longitude,
		website:     website,
		category:    category,
		isPublic:    false,
		isApproved:  false,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a UserPlace from persistence data (no validation).
func Reconstruct(
	id, userID uuid.UUID,
	name, description string,
	latitude, longitude float64,
	website, category string,
	isPublic, isApproved bool,
	createdAt, updatedAt time.Time,
) *UserPlace {
	return &UserPlace{
		id:          id,
		userID:      userID,
		name:        name,
		description: description,
		latitude:    latitude,
		longitude:   longitude,
		website:     website,
		category:    category,
		isPublic:    isPublic,
		isApproved:  isApproved,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (p *UserPlace) ID() uuid.UUID        { return p.id }
func (p *UserPlace) UserID() uuid.UUID    { return p.userID }
func (p *UserPlace) Name() string         { return p.name }
func (p *UserPlace) Description() string  { return p.description }
func (p *UserPlace) Latitude() float64    { return p.latitude }
func (p *UserPlace) Longitude() float64   { return p.longitude }
func (p *UserPlace) Website() string      { return p.website }
func (p *UserPlace) Category() string     { return p.category }
func (p *UserPlace) IsPublic() bool       { return p.isPublic }
func (p *UserPlace) IsApproved() bool     { return p.isApproved }
func (p *UserPlace) CreatedAt() time.Time { return p.createdAt }
func (p *UserPlace) UpdatedAt() time.Time { return p.updatedAt }

// Location returns the place coordinates as a geo.Point.
func (p *UserPlace) Location() geo.Point {
	return geo.Point{Latitude: p.latitude, Longitude: p.longitude}
}

// --- Behavior ---

// Update patches the fields that are provided (non-nil).
func (p *UserPlace) Update(name, description, website, category *string, latitude, longitude *float64) error {
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return domain.NewValidationError("place name cannot be empty")
		}
		p.name = *name
	}
	if description != nil {
		p.description = *description
	}
	if website != nil {
		p.website = *website
	}
	if category != nil {
		p.category = *category
	}
	if latitude != nil || longitude != nil {
		lat, lon := p.latitude, p.longitude
		if latitude != nil {
			lat = *latitude
		}
		if longitude != nil {
			lon = *longitude
		}
		if err := geo.ValidatePoint(geo.Point{Latitude: lat, Longitude: lon}); err != nil {
			return err
		}
		p.latitude, p.longitude = lat, lon
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// Publish marks the place as submitted for the public catalogue. Approval is
// a separate moderation step.
func (p *UserPlace) Publish() {
	p.isPublic = true
	p.updatedAt = time.Now().UTC()
}

// Approve marks a public place as moderated and visible to everyone.
func (p *UserPlace) Approve() error {
	if !p.isPublic {
		return domain.NewValidationError("only public places can be approved")
	}
	p.isApproved = true
	p.updatedAt = time.Now().UTC()
	return nil
}
