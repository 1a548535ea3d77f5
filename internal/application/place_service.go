package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain"
	placeDomain "github.com/tripwise/service-travel/internal/domain/place"
	"github.com/tripwise/service-travel/internal/events"
	"github.com/tripwise/service-travel/internal/kafka"
)

// ImageStore persists uploaded place images. Satisfied by
// *storage.ImageStore.
type ImageStore interface {
	Save(ownerID uuid.UUID, filename string, size int64, r io.Reader) (string, error)
	Remove(urlPath string) error
}

// CreatePlaceRequest is the request DTO for adding a place.
type CreatePlaceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"min=-180,max=180"`
	Website     string  `json:"website"`
	Category    string  `json:"category"`
	IsPublic    bool    `json:"is_public"`
}

// UpdatePlaceRequest patches a place; nil means keep as is.
type UpdatePlaceRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Website     *string  `json:"website"`
	Category    *string  `json:"category"`
}

// PlaceDTO is the API representation of a user place.
type PlaceDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Website     string     `json:"website,omitempty"`
	Category    string     `json:"category,omitempty"`
	IsPublic    bool       `json:"is_public"`
	IsApproved  bool       `json:"is_approved"`
	Images      []ImageDTO `json:"images,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ImageDTO is the API representation of a place image.
type ImageDTO struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption,omitempty"`
	IsPrimary bool      `json:"is_primary"`
}

// PlaceService implements user-place use cases including image uploads and
// admin moderation.
type PlaceService struct {
	repo     placeDomain.PlaceRepository
	images   ImageStore
	producer EventPublisher
	logger   *zap.Logger
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(repo placeDomain.PlaceRepository, images ImageStore, producer EventPublisher, logger *zap.Logger) *PlaceService {
	return &PlaceService{repo: repo, images: images, producer: producer, logger: logger}
}

// CreatePlace adds a new place for the user.
func (s *PlaceService) CreatePlace(ctx context.Context, userID uuid.UUID, req CreatePlaceRequest) (*PlaceDTO, error) {
	p, err := placeDomain.NewUserPlace(userID, req.Name, req.Description,
		req.Latitude, req.Longitude, req.Website, req.Category)
	if err != nil {
		return nil, err
	}
	if req.IsPublic {
		p.Publish()
	}

	if err := s.repo.Save(ctx, p); err != nil {
		s.logger.Error("failed to create place", zap.Error(err))
		return nil, fmt.Errorf("failed to create place: %w", err)
	}

	s.publishEvent(ctx, events.TopicPlaceEvents, events.PlaceCreated, p.ID().String(), events.PlaceCreatedEvent{
		PlaceID:    p.ID(),
		UserID:     userID,
		Name:       p.Name(),
		Category:   p.Category(),
		OccurredAt: time.Now().UTC(),
	})

	s.logger.Info("place created",
		zap.String("place_id", p.ID().String()),
		zap.String("user_id", userID.String()),
	)
	dto := toPlaceDTO(p, nil)
	return &dto, nil
}

// GetPlace returns a place. Owners see their own places; everyone else only
// sees approved public ones.
func (s *PlaceService) GetPlace(ctx context.Context, userID, placeID uuid.UUID) (*PlaceDTO, error) {
	p, err := s.repo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if p.UserID() != userID && !(p.IsPublic() && p.IsApproved()) {
		return nil, domain.NewNotFoundError("Place", placeID.String())
	}

	images, err := s.repo.ListImages(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list place images: %w", err)
	}
	dto := toPlaceDTO(p, images)
	return &dto, nil
}

// ListMyPlaces returns the user's places, newest first.
func (s *PlaceService) ListMyPlaces(ctx context.Context, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[PlaceDTO], error) {
	places, total, err := s.repo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return s.toPage(places, total, page, limit), nil
}

// ListPublicPlaces returns approved public places, newest first.
func (s *PlaceService) ListPublicPlaces(ctx context.Context, page, limit int) (*domain.PaginatedResult[PlaceDTO], error) {
	places, total, err := s.repo.ListPublic(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list public places: %w", err)
	}
	return s.toPage(places, total, page, limit), nil
}

// UpdatePlace patches a place, verifying ownership.
func (s *PlaceService) UpdatePlace(ctx context.Context, userID, placeID uuid.UUID, req UpdatePlaceRequest) (*PlaceDTO, error) {
	p, err := s.ownedPlace(ctx, userID, placeID)
	if err != nil {
		return nil, err
	}

	if err := p.Update(req.Name, req.Description, req.Website, req.Category, req.Latitude, req.Longitude); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to update place", zap.Error(err))
		return nil, fmt.Errorf("failed to update place: %w", err)
	}

	s.logger.Info("place updated", zap.String("place_id", placeID.String()))
	dto := toPlaceDTO(p, nil)
	return &dto, nil
}

// DeletePlace removes a place and its stored images, verifying ownership.
func (s *PlaceService) DeletePlace(ctx context.Context, userID, placeID uuid.UUID) error {
	p, err := s.ownedPlace(ctx, userID, placeID)
	if err != nil {
		return err
	}

	images, err := s.repo.ListImages(ctx, placeID)
	if err != nil {
		return fmt.Errorf("failed to list place images: %w", err)
	}
	if err := s.repo.Delete(ctx, p.ID()); err != nil {
		s.logger.Error("failed to delete place", zap.Error(err))
		return fmt.Errorf("failed to delete place: %w", err)
	}
	for _, img := range images {
		if err := s.images.Remove(img.ImageURL); err != nil {
			s.logger.Warn("failed to remove image file",
				zap.String("image_url", img.ImageURL),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("place deleted", zap.String("place_id", placeID.String()))
	return nil
}

// UploadImage stores an uploaded image and attaches it to a place, verifying
// ownership. The first image of a place becomes its primary one.
func (s *PlaceService) UploadImage(ctx context.Context, userID, placeID uuid.UUID, filename string, size int64, r io.Reader, caption string) (*ImageDTO, error) {
	p, err := s.ownedPlace(ctx, userID, placeID)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Save(userID, filename, size, r)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListImages(ctx, p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to list place images: %w", err)
	}

	img, err := placeDomain.NewPlaceImage(p.ID(), url, caption, len(existing) == 0)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AddImage(ctx, img); err != nil {
		s.logger.Error("failed to save place image", zap.Error(err))
		if removeErr := s.images.Remove(url); removeErr != nil {
			s.logger.Warn("failed to remove orphaned image file", zap.Error(removeErr))
		}
		return nil, fmt.Errorf("failed to save place image: %w", err)
	}

	s.logger.Info("place image uploaded",
		zap.String("place_id", placeID.String()),
		zap.String("image_url", url),
	)
	dto := toImageDTO(img)
	return &dto, nil
}

// ApprovePlace marks a public place as moderated. Admin only; role checks
// happen in the middleware.
func (s *PlaceService) ApprovePlace(ctx context.Context, placeID uuid.UUID) (*PlaceDTO, error) {
	p, err := s.repo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if err := p.Approve(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("failed to approve place", zap.Error(err))
		return nil, fmt.Errorf("failed to approve place: %w", err)
	}

	s.logger.Info("place approved", zap.String("place_id", placeID.String()))
	dto := toPlaceDTO(p, nil)
	return &dto, nil
}

func (s *PlaceService) ownedPlace(ctx context.Context, userID, placeID uuid.UUID) (*placeDomain.UserPlace, error) {
	p, err := s.repo.FindByID(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if p.UserID() != userID {
		return nil, domain.NewForbiddenError("you do not own this place")
	}
	return p, nil
}

func (s *PlaceService) toPage(places []*placeDomain.UserPlace, total int64, page, limit int) *domain.PaginatedResult[PlaceDTO] {
	dtos := make([]PlaceDTO, len(places))
	for i, p := range places {
		dtos[i] = toPlaceDTO(p, nil)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result
}

func (s *PlaceService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toPlaceDTO(p *placeDomain.UserPlace, images []*placeDomain.PlaceImage) PlaceDTO {
	dto := PlaceDTO{
		ID:          p.ID(),
		UserID:      p.UserID(),
		Name:        p.Name(),
		Description: p.Description(),
		Latitude:    p.Latitude(),
		Longitude:   p.Longitude(),
		Website:     p.Website(),
		Category:    p.Category(),
		IsPublic:    p.IsPublic(),
		IsApproved:  p.IsApproved(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
	for _, img := range images {
		dto.Images = append(dto.Images, toImageDTO(img))
	}
	return dto
}

func toImageDTO(img *placeDomain.PlaceImage) ImageDTO {
	return ImageDTO{
		ID:        img.ID,
		ImageURL:  img.ImageURL,
		Caption:   img.Caption,
		IsPrimary: img.IsPrimary,
	}
}
