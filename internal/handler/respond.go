package handler

import (
	"errors"
	"log"
	"net/http"

	"chainmove/internal/domain"

	"github.com/gin-gonic/gin"
)

// respondError maps service error classes to HTTP status codes. Handlers are
// the only layer that knows about HTTP.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrForbiddenRole):
		c.JSON(http.StatusForbidden, gin.H{"error": "role not allowed"})
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsBusinessRule(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsTransientConflict(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporary conflict, please retry"})
	default:
		log.Printf("[HTTP] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
