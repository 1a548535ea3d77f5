package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripwise/service-travel/internal/domain"
	placeDomain "github.com/tripwise/service-travel/internal/domain/place"
)

// PlaceModel is the GORM model for the user_places table.
type PlaceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Latitude    float64   `gorm:"type:decimal(10,7);not null"`
	Longitude   float64   `gorm:"type:decimal(10,7);not null"`
	Website     string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(50)"`
	IsPublic    bool      `gorm:"not null;default:false"`
	IsApproved  bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PlaceModel) TableName() string { return "user_places" }

// PlaceImageModel is the GORM model for the place_images table.
type PlaceImageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PlaceID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ImageURL  string    `gorm:"type:text;not null"`
	Caption   string    `gorm:"type:varchar(255)"`
	IsPrimary bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (PlaceImageModel) TableName() string { return "place_images" }

// GormPlaceRepository implements PlaceRepository using GORM.
type GormPlaceRepository struct {
	db *gorm.DB
}

func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

func (r *GormPlaceRepository) FindByID(ctx context.Context, id uuid.UUID) (*placeDomain.UserPlace, error) {
	var model PlaceModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Place", id.String())
		}
		return nil, err
	}
	return toPlaceDomain(&model), nil
}

func (r *GormPlaceRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*placeDomain.UserPlace, int64, error) {
	return r.list(ctx, r.db.Where("user_id = ?", userID), page, limit)
}

func (r *GormPlaceRepository) ListPublic(ctx context.Context, page, limit int) ([]*placeDomain.UserPlace, int64, error) {
	return r.list(ctx, r.db.Where("is_public = ? AND is_approved = ?", true, true), page, limit)
}

func (r *GormPlaceRepository) list(ctx context.Context, query *gorm.DB, page, limit int) ([]*placeDomain.UserPlace, int64, error) {
	var total int64
	if err := query.WithContext(ctx).Model(&PlaceModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []PlaceModel
	if err := query.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	places := make([]*placeDomain.UserPlace, len(models))
	for i, m := range models {
		places[i] = toPlaceDomain(&m)
	}
	return places, total, nil
}

func (r *GormPlaceRepository) Save(ctx context.Context, p *placeDomain.UserPlace) error {
	return r.db.WithContext(ctx).Create(toPlaceModel(p)).Error
}

func (r *GormPlaceRepository) Update(ctx context.Context, p *placeDomain.UserPlace) error {
	model := toPlaceModel(p)
	result := r.db.WithContext(ctx).
		Model(&PlaceModel{}).
		Where("id = ?", model.ID).
		Select("Name", "Description", "Latitude", "Longitude", "Website",
			"Category", "IsPublic", "IsApproved", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Place", model.ID.String())
	}
	return nil
}

func (r *GormPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("place_id = ?", id).Delete(&PlaceImageModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&PlaceModel{}).Error
	})
}

func (r *GormPlaceRepository) AddImage(ctx context.Context, img *placeDomain.PlaceImage) error {
	model := &PlaceImageModel{
		ID:        img.ID,
		PlaceID:   img.PlaceID,
		ImageURL:  img.ImageURL,
		Caption:   img.Caption,
		IsPrimary: img.IsPrimary,
		CreatedAt: img.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *GormPlaceRepository) ListImages(ctx context.Context, placeID uuid.UUID) ([]*placeDomain.PlaceImage, error) {
	var models []PlaceImageModel
	if err := r.db.WithContext(ctx).
		Where("place_id = ?", placeID).
		Order("is_primary DESC, created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	images := make([]*placeDomain.PlaceImage, len(models))
	for i, m := range models {
		images[i] = &placeDomain.PlaceImage{
			ID:        m.ID,
			PlaceID:   m.PlaceID,
			ImageURL:  m.ImageURL,
			Caption:   m.Caption,
			IsPrimary: m.IsPrimary,
			CreatedAt: m.CreatedAt,
		}
	}
	return images, nil
}

// --- Conversions ---

func toPlaceModel(p *placeDomain.UserPlace) *PlaceModel {
	return &PlaceModel{
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
}

func toPlaceDomain(m *PlaceModel) *placeDomain.UserPlace {
	return placeDomain.Reconstruct(
		m.ID, m.UserID,
		m.Name, m.Description,
		m.Latitude, m.Longitude,
		m.Website, m.Category,
		m.IsPublic, m.IsApproved,
		m.CreatedAt, m.UpdatedAt,
	)
}
