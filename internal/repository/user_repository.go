package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tripwise/service-travel/internal/domain"
	userDomain "github.com/tripwise/service-travel/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'traveler'"`
	IsActive     bool      `gorm:"not null;default:true"`
	AvatarURL    string    `gorm:"type:text"`
	Bio          string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (UserModel) TableName() string { return "users" }

// VisitedCountryModel is the GORM model for the visited_countries table.
type VisitedCountryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	CountryCode string    `gorm:"type:varchar(2);not null"`
	CountryName string    `gorm:"type:varchar(100);not null"`
	VisitedAt   time.Time `gorm:"type:timestamptz;not null;default:now()"`
}

func (VisitedCountryModel) TableName() string { return "visited_countries" }

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, err
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, err
	}
	return toUserDomain(&model), nil
}

func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	err := r.db.WithContext(ctx).Create(toUserModel(u)).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.NewConflictError("email is already registered")
	}
	return err
}

func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Select("Name", "IsActive", "AvatarURL", "Bio", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("User", model.ID.String())
	}
	return nil
}

func (r *GormUserRepository) AddVisitedCountry(ctx context.Context, vc *userDomain.VisitedCountry) error {
	// Adding the same country twice is a no-op.
	var existing VisitedCountryModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND country_code = ?", vc.UserID, vc.CountryCode).
		First(&existing).Error
	if err == nil {
		*vc = *toVisitedCountryDomain(&existing)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	model := &VisitedCountryModel{
		ID:          vc.ID,
		UserID:      vc.UserID,
		CountryCode: vc.CountryCode,
		CountryName: vc.CountryName,
		VisitedAt:   vc.VisitedAt,
	}
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *GormUserRepository) ListVisitedCountries(ctx context.Context, userID uuid.UUID) ([]userDomain.VisitedCountry, error) {
	var models []VisitedCountryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("visited_at DESC").
		Find(&models).Error; err != nil {
		return nil, err
	}
	countries := make([]userDomain.VisitedCountry, len(models))
	for i, m := range models {
		countries[i] = *toVisitedCountryDomain(&m)
	}
	return countries, nil
}

func (r *GormUserRepository) RemoveVisitedCountry(ctx context.Context, userID uuid.UUID, countryCode string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND country_code = ?", userID, countryCode).
		Delete(&VisitedCountryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("VisitedCountry", countryCode)
	}
	return nil
}

// --- Conversions ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		Role:         u.Role(),
		IsActive:     u.IsActive(),
		AvatarURL:    u.AvatarURL(),
		Bio:          u.Bio(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

func toUserDomain(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email, m.Name, m.PasswordHash, m.Role,
		m.IsActive,
		m.AvatarURL, m.Bio,
		m.CreatedAt, m.UpdatedAt,
	)
}

func toVisitedCountryDomain(m *VisitedCountryModel) *userDomain.VisitedCountry {
	return &userDomain.VisitedCountry{
		ID:          m.ID,
		UserID:      m.UserID,
		CountryCode: m.CountryCode,
		CountryName: m.CountryName,
		VisitedAt:   m.VisitedAt,
	}
}
