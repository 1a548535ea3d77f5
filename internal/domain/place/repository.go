package place

import (
	"context"

	"github.com/google/uuid"
)

// PlaceRepository defines the persistence contract for user places and
// their images.
type PlaceRepository interface {
	// FindByID retrieves a place by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*UserPlace, error)

	// FindByUserID retrieves places created by a user with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*UserPlace, int64, error)

	// ListPublic retrieves approved public places with pagination.
	ListPublic(ctx context.Context, page, limit int) ([]*UserPlace, int64, error)

	// Save persists a new place.
	Save(ctx context.Context, p *UserPlace) error

	// Update persists changes to an existing place.
	Update(ctx context.Context, p *UserPlace) error

	// Delete removes a place and its images permanently.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddImage attaches an image to a place.
	AddImage(ctx context.Context, img *PlaceImage) error

	// ListImages retrieves all images of a place, primary first.
	ListImages(ctx context.Context, placeID uuid.UUID) ([]*PlaceImage, error)
}
