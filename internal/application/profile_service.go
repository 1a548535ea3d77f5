package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain"
	routeDomain "github.com/tripwise/service-travel/internal/domain/route"
	userDomain "github.com/tripwise/service-travel/internal/domain/user"
)

// UpdateProfileRequest patches profile fields; nil means keep as is.
type UpdateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// AddVisitedCountryRequest records a visited country.
type AddVisitedCountryRequest struct {
	CountryCode string `json:"country_code" binding:"required,len=2"`
	CountryName string `json:"country_name" binding:"required"`
}

// VisitedCountryDTO is the API representation of a visited country.
type VisitedCountryDTO struct {
	ID          uuid.UUID `json:"id"`
	CountryCode string    `json:"country_code"`
	CountryName string    `json:"country_name"`
	VisitedAt   time.Time `json:"visited_at"`
}

// TravelStatsDTO summarizes a traveler's activity.
type TravelStatsDTO struct {
	TotalRoutes    int64 `json:"total_routes"`
	TotalCountries int   `json:"total_countries"`
}

// ProfileService implements traveler profile use cases.
type ProfileService struct {
	users  userDomain.UserRepository
	routes routeDomain.RouteRepository
	logger *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users userDomain.UserRepository, routes routeDomain.RouteRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{users: users, routes: routes, logger: logger}
}

// GetProfile returns the user's own profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// UpdateProfile patches the user's profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.UpdateProfile(req.Name, req.Bio, req.AvatarURL); err != nil {
		return nil, err
	}
	if err := s.users.Update(ctx, u); err != nil {
		s.logger.Error("failed to update profile", zap.Error(err))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated", zap.String("user_id", userID.String()))
	dto := toUserDTO(u)
	return &dto, nil
}

// AddVisitedCountry marks a country as visited. Adding the same country
// twice returns the existing record.
func (s *ProfileService) AddVisitedCountry(ctx context.Context, userID uuid.UUID, req AddVisitedCountryRequest) (*VisitedCountryDTO, error) {
	code := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if len(code) != 2 {
		return nil, domain.NewValidationError("country code must be an ISO 3166-1 alpha-2 code")
	}

	vc := &userDomain.VisitedCountry{
		ID:          uuid.New(),
		UserID:      userID,
		CountryCode: code,
		CountryName: req.CountryName,
		VisitedAt:   time.Now().UTC(),
	}
	if err := s.users.AddVisitedCountry(ctx, vc); err != nil {
		s.logger.Error("failed to add visited country", zap.Error(err))
		return nil, fmt.Errorf("failed to add visited country: %w", err)
	}

	dto := toVisitedCountryDTO(vc)
	return &dto, nil
}

// ListVisitedCountries returns the user's visited countries.
func (s *ProfileService) ListVisitedCountries(ctx context.Context, userID uuid.UUID) ([]VisitedCountryDTO, error) {
	countries, err := s.users.ListVisitedCountries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visited countries: %w", err)
	}
	dtos := make([]VisitedCountryDTO, len(countries))
	for i := range countries {
		dtos[i] = toVisitedCountryDTO(&countries[i])
	}
	return dtos, nil
}

// RemoveVisitedCountry deletes a visited-country record.
func (s *ProfileService) RemoveVisitedCountry(ctx context.Context, userID uuid.UUID, countryCode string) error {
	return s.users.RemoveVisitedCountry(ctx, userID, strings.ToUpper(countryCode))
}

// GetTravelStats returns route and country counts for the user.
func (s *ProfileService) GetTravelStats(ctx context.Context, userID uuid.UUID) (*TravelStatsDTO, error) {
	totalRoutes, err := s.routes.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count routes: %w", err)
	}
	countries, err := s.users.ListVisitedCountries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visited countries: %w", err)
	}
	return &TravelStatsDTO{
		TotalRoutes:    totalRoutes,
		TotalCountries: len(countries),
	}, nil
}

func toVisitedCountryDTO(vc *userDomain.VisitedCountry) VisitedCountryDTO {
	return VisitedCountryDTO{
		ID:          vc.ID,
		CountryCode: vc.CountryCode,
		CountryName: vc.CountryName,
		VisitedAt:   vc.VisitedAt,
	}
}
