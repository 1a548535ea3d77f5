package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tripwise/service-travel/internal/domain"
	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/nominatim"
)

// Geocoder resolves place names and coordinates. Satisfied by
// *nominatim.Client; stubbed in unit tests.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]nominatim.Place, error)
	Reverse(ctx context.Context, point geo.Point) (*nominatim.Place, error)
}

// LocationSearchResult bundles geocoding hits with the query they answer.
type LocationSearchResult struct {
	Results    []nominatim.Place `json:"results"`
	Query      string            `json:"query"`
	TotalFound int               `json:"total_found"`
}

// GeocodeResult is a single resolved address.
type GeocodeResult struct {
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
}

// LocationService implements place search and geocoding use cases.
type LocationService struct {
	geocoder Geocoder
	logger   *zap.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(geocoder Geocoder, logger *zap.Logger) *LocationService {
	return &LocationService{geocoder: geocoder, logger: logger}
}

// SearchPlaces finds places matching a free-text query.
func (s *LocationService) SearchPlaces(ctx context.Context, query string, limit int) (*LocationSearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query cannot be empty")
	}

	places, err := s.geocoder.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search places: %w", err)
	}

	return &LocationSearchResult{
		Results:    places,
		Query:      query,
		TotalFound: len(places),
	}, nil
}

// Geocode resolves an address to coordinates using the best search hit.
func (s *LocationService) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.NewValidationError("address cannot be empty")
	}

	places, err := s.geocoder.Search(ctx, address, 1)
	if err != nil {
		return nil, fmt.Errorf("geocode address: %w", err)
	}
	if len(places) == 0 {
		return nil, domain.NewNotFoundError("Location", address)
	}

	hit := places[0]
	return &GeocodeResult{
		Address:     address,
		Latitude:    hit.Latitude,
		Longitude:   hit.Longitude,
		DisplayName: hit.DisplayName,
	}, nil
}

// ReverseGeocode resolves coordinates to the nearest known place.
func (s *LocationService) ReverseGeocode(ctx context.Context, point geo.Point) (*nominatim.Place, error) {
	if err := geo.ValidatePoint(point); err != nil {
		return nil, err
	}

	place, err := s.geocoder.Reverse(ctx, point)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}
	return place, nil
}
