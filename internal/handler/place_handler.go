package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tripwise/service-travel/internal/application"
	"github.com/tripwise/service-travel/internal/auth"
	"github.com/tripwise/service-travel/internal/middleware"
	"github.com/tripwise/service-travel/internal/response"
)

// PlaceHandler handles HTTP requests for user places and their images.
type PlaceHandler struct {
	service *application.PlaceService
}

// NewPlaceHandler creates a new PlaceHandler.
func NewPlaceHandler(service *application.PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// RegisterRoutes registers all place routes. Approval is admin only.
func (h *PlaceHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	places := r.Group("/api/v1/places")
	places.Use(authMW)
	{
		places.POST("", h.CreatePlace)
		places.GET("", h.ListMyPlaces)
		places.GET("/public", h.ListPublicPlaces)
		places.GET("/:id", h.GetPlace)
		places.PUT("/:id", h.UpdatePlace)
		places.DELETE("/:id", h.DeletePlace)
		places.POST("/:id/images", h.UploadImage)
		places.POST("/:id/approve", middleware.RequireRole(auth.RoleAdmin), h.ApprovePlace)
	}
}

// CreatePlace adds a new place.
func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePlace(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListMyPlaces returns the current user's places.
func (h *PlaceHandler) ListMyPlaces(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.ListMyPlaces(c.Request.Context(), userID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ListPublicPlaces returns approved public places.
func (h *PlaceHandler) ListPublicPlaces(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := h.service.ListPublicPlaces(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetPlace returns a single place with its images.
func (h *PlaceHandler) GetPlace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid place ID")
		return
	}

	result, err := h.service.GetPlace(c.Request.Context(), userID, placeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdatePlace patches a place.
func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid place ID")
		return
	}

	var req application.UpdatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePlace(c.Request.Context(), userID, placeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeletePlace removes a place and its images.
func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid place ID")
		return
	}

	if err := h.service.DeletePlace(c.Request.Context(), userID, placeID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "place deleted"})
}

// UploadImage attaches a multipart image to a place.
func (h *PlaceHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid place ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "could not read image file")
		return
	}
	defer file.Close()

	result, err := h.service.UploadImage(c.Request.Context(), userID, placeID,
		fileHeader.Filename, fileHeader.Size, file, c.PostForm("caption"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ApprovePlace marks a public place as moderated.
func (h *PlaceHandler) ApprovePlace(c *gin.Context) {
	placeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid place ID")
		return
	}

	result, err := h.service.ApprovePlace(c.Request.Context(), placeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
