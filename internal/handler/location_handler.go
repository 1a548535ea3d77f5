package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tripwise/service-travel/internal/application"
	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/middleware"
	"github.com/tripwise/service-travel/internal/nominatim"
	"github.com/tripwise/service-travel/internal/response"
)

// LocationHandler handles HTTP requests for place search and geocoding.
type LocationHandler struct {
	service *application.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(service *application.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// RegisterRoutes registers the location routes. Search hits an external
// provider, so it gets its own rate limit tier.
func (h *LocationHandler) RegisterRoutes(r *gin.RouterGroup) {
	locations := r.Group("/api/v1/locations")
	locations.Use(middleware.RateLimit(2, 10))
	{
		locations.GET("/search", h.Search)
		locations.GET("/geocode", h.Geocode)
		locations.GET("/reverse", h.Reverse)
	}
}

// Search finds places matching a free-text query.
func (h *LocationHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	result, err := h.service.SearchPlaces(c.Request.Context(), c.Query("query"), limit)
	if err != nil {
		writeLocationError(c, err)
		return
	}

	response.Success(c, result)
}

// Geocode resolves an address to coordinates.
func (h *LocationHandler) Geocode(c *gin.Context) {
	result, err := h.service.Geocode(c.Request.Context(), c.Query("address"))
	if err != nil {
		writeLocationError(c, err)
		return
	}

	response.Success(c, result)
}

// Reverse resolves coordinates to the nearest known place.
func (h *LocationHandler) Reverse(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
	if latErr != nil || lonErr != nil {
		response.BadRequest(c, "lat and lon must be valid coordinates")
		return
	}

	result, err := h.service.ReverseGeocode(c.Request.Context(), geo.Point{Latitude: lat, Longitude: lon})
	if err != nil {
		writeLocationError(c, err)
		return
	}

	response.Success(c, result)
}

func writeLocationError(c *gin.Context, err error) {
	if errors.Is(err, nominatim.ErrUnavailable) {
		response.ServiceUnavailable(c, "geocoding service is unavailable")
		return
	}
	response.Error(c, err)
}
