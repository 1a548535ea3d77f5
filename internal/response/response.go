// Package response holds the JSON envelope and the domain-error to HTTP
// status mapping every handler goes through.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripwise/service-travel/internal/domain"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta carries pagination info for list responses.
type Meta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// Success writes a 200 with the data wrapped in the envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 with the data wrapped in the envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Paginated writes a 200 list response with pagination meta.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    items,
		Meta:    &Meta{Total: total, Page: page, Limit: limit},
	})
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: message})
}

// Error maps a domain error kind to an HTTP status. Unclassified errors
// become opaque 500s so internals never leak to clients.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		c.JSON(http.StatusBadRequest, Envelope{Success: false, Error: err.Error()})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, Envelope{Success: false, Error: err.Error()})
	case domain.KindConflict:
		c.JSON(http.StatusConflict, Envelope{Success: false, Error: err.Error()})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, Envelope{Success: false, Error: err.Error()})
	case domain.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, Envelope{Success: false, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, Envelope{Success: false, Error: "internal server error"})
	}
}

// ServiceUnavailable writes a 503 for upstream provider outages.
func ServiceUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusServiceUnavailable, Envelope{Success: false, Error: message})
}
