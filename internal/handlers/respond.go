package handlers

import (
	"errors"
	"log"
	"net/http"

	"agromarket/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps the service failure taxonomy to HTTP statuses. Anything
// outside the taxonomy is a store failure: logged, surfaced as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotAuthenticated),
		errors.Is(err, services.ErrInvalidLogin):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("store error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
