package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripwise/service-travel/internal/domain"
	routeDomain "github.com/tripwise/service-travel/internal/domain/route"
)

// RouteModel is the GORM model for the routes table.
type RouteModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Description    string    `gorm:"type:text"`
	StartPointName string    `gorm:"type:varchar(200);not null"`
	StartLat       float64   `gorm:"type:decimal(10,7);not null"`
	StartLon       float64   `gorm:"type:decimal(10,7);not null"`
	EndPointName   string    `gorm:"type:varchar(200);not null"`
	EndLat         float64   `gorm:"type:decimal(10,7);not null"`
	EndLon         float64   `gorm:"type:decimal(10,7);not null"`
	CreatedAt      time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt      time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (RouteModel) TableName() string { return "routes" }

// GormRouteRepository implements RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) FindByID(ctx context.Context, id uuid.UUID) (*routeDomain.Route, error) {
	var model RouteModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Route", id.String())
		}
		return nil, err
	}
	return toRouteDomain(&model), nil
}

func (r *GormRouteRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*routeDomain.Route, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&RouteModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RouteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	routes := make([]*routeDomain.Route, len(models))
	for i, m := range models {
		routes[i] = toRouteDomain(&m)
	}
	return routes, total, nil
}

func (r *GormRouteRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&RouteModel{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

func (r *GormRouteRepository) Save(ctx context.Context, rt *routeDomain.Route) error {
	return r.db.WithContext(ctx).Create(toRouteModel(rt)).Error
}

func (r *GormRouteRepository) Update(ctx context.Context, rt *routeDomain.Route) error {
	model := toRouteModel(rt)
	result := r.db.WithContext(ctx).
		Model(&RouteModel{}).
		Where("id = ?", model.ID).
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Route", model.ID.String())
	}
	return nil
}

func (r *GormRouteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&RouteModel{}).Error
}

// --- Conversions ---

func toRouteModel(rt *routeDomain.Route) *RouteModel {
	return &RouteModel{
		ID:             rt.ID(),
		UserID:         rt.UserID(),
		Name:           rt.Name(),
		Description:    rt.Description(),
		StartPointName: rt.Start().Name,
		StartLat:       rt.Start().Latitude,
		StartLon:       rt.Start().Longitude,
		EndPointName:   rt.End().Name,
		EndLat:         rt.End().Latitude,
		EndLon:         rt.End().Longitude,
		CreatedAt:      rt.CreatedAt(),
		UpdatedAt:      rt.UpdatedAt(),
	}
}

func toRouteDomain(m *RouteModel) *routeDomain.Route {
	return routeDomain.Reconstruct(
		m.ID, m.UserID,
		m.Name, m.Description,
		routeDomain.Waypoint{Name: m.StartPointName, Latitude: m.StartLat, Longitude: m.StartLon},
		routeDomain.Waypoint{Name: m.EndPointName, Latitude: m.EndLat, Longitude: m.EndLon},
		m.CreatedAt, m.UpdatedAt,
	)
}
