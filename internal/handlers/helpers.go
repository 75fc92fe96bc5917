package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vitadoc/internal/models"
	"vitadoc/internal/services"
)

// respondError is the single place that turns flow failures into HTTP
// statuses. Anything unrecognized is an internal error and leaks nothing.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
	case errors.Is(err, services.ErrFederatedOnly):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Use Google Sign-In for this account"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
	case errors.Is(err, services.ErrCodeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired code"})
	case errors.Is(err, services.ErrSessionExpired):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Session expired, request a new code"})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
	case errors.Is(err, services.ErrEmailSend):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to send verification email"})
	case errors.Is(err, services.ErrUpstreamAuth):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Identity token rejected"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("[http] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

// userSummary is the subset returned with a token after authentication.
func userSummary(u *models.User) gin.H {
	return gin.H{
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}
}
