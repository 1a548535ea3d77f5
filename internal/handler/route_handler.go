package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/application"
	"github.com/tripwise/service-travel/internal/auth"
	"github.com/tripwise/service-travel/internal/domain/geo"
	"github.com/tripwise/service-travel/internal/domain/routing"
	"github.com/tripwise/service-travel/internal/middleware"
	"github.com/tripwise/service-travel/internal/response"
)

// RouteHandler handles HTTP requests for saved routes and route planning.
type RouteHandler struct {
	service *application.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(service *application.RouteService) *RouteHandler {
	return &RouteHandler{service: service}
}

// RegisterRoutes registers all route endpoints. The fixed paths go before
// the :id ones so gin does not swallow them as IDs.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	routes := r.Group("/api/v1/routes")
	routes.Use(middleware.AuthMiddleware(jwtManager))
	{
		routes.POST("", h.CreateRoute)
		routes.GET("", h.ListRoutes)
		routes.GET("/plan", h.PlanRoute)
		routes.GET("/navigation", h.PlanNavigation)
		routes.GET("/distance/calculate", h.QuickDistance)
		routes.GET("/:id", h.GetRoute)
		routes.PUT("/:id", h.UpdateRoute)
		routes.DELETE("/:id", h.DeleteRoute)
		routes.GET("/:id/distance", h.RouteDistance)
	}
}

// CreateRoute saves a new route.
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateRoute(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListRoutes returns the user's saved routes.
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListRoutes(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetRoute returns a single saved route.
func (h *RouteHandler) GetRoute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	result, err := h.service.GetRoute(c.Request.Context(), userID, routeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateRoute patches a saved route.
func (h *RouteHandler) UpdateRoute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	var req application.UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRoute(c.Request.Context(), userID, routeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteRoute removes a saved route.
func (h *RouteHandler) DeleteRoute(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	if err := h.service.DeleteRoute(c.Request.Context(), userID, routeID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "route deleted"})
}

// RouteDistance returns the direct-line estimate for a saved route.
func (h *RouteHandler) RouteDistance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	routeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid route ID")
		return
	}

	result, err := h.service.RouteDistance(c.Request.Context(), userID, routeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// QuickDistance returns the direct-line estimate between query coordinates.
func (h *RouteHandler) QuickDistance(c *gin.Context) {
	from, to, ok := parsePointPair(c)
	if !ok {
		return
	}

	result, err := h.service.QuickDistance(from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PlanRoute plans a route between query coordinates for a profile.
func (h *RouteHandler) PlanRoute(c *gin.Context) {
	from, to, ok := parsePointPair(c)
	if !ok {
		return
	}
	profile := routing.ParseProfile(c.DefaultQuery("profile", "driving"))

	result, err := h.service.PlanRoute(c.Request.Context(), from, to, profile)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PlanNavigation plans a route with turn-by-turn instructions.
func (h *RouteHandler) PlanNavigation(c *gin.Context) {
	from, to, ok := parsePointPair(c)
	if !ok {
		return
	}
	profile := routing.ParseProfile(c.DefaultQuery("profile", "driving"))

	result, err := h.service.PlanNavigation(c.Request.Context(), from, to, profile)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// parsePointPair reads start/end coordinates from the query string. On
// failure it writes the 400 itself and returns ok=false.
func parsePointPair(c *gin.Context) (geo.Point, geo.Point, bool) {
	coords := make([]float64, 4)
	for i, key := range []string{"start_lat", "start_lon", "end_lat", "end_lon"} {
		v, err := strconv.ParseFloat(c.Query(key), 64)
		if err != nil {
			response.BadRequest(c, key+" must be a valid coordinate")
			return geo.Point{}, geo.Point{}, false
		}
		coords[i] = v
	}
	from := geo.Point{Latitude: coords[0], Longitude: coords[1]}
	to := geo.Point{Latitude: coords[2], Longitude: coords[3]}
	return from, to, true
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}
