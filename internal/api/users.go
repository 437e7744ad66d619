package api

import (
	"net/http" // HTTP status codes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/middleware" // Context keys
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"      // User repository

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for a profile update, nil fields are unchanged
type ProfileUpdateRequest struct {
	DisplayName *string `json:"display_name"` // New display name
	Email       *string `json:"email"`        // New email, must stay unique
}

// Request struct for a password change
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"` // Must match the stored hash
	NewPassword     string `json:"new_password" binding:"required"`     // 8-72 characters
}

// GetMeHandler returns the authenticated user
func GetMeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := c.Get(middleware.UserKey) // Loaded by ActiveUserMiddleware
		c.JSON(http.StatusOK, user)
	}
}

// UpdateMeHandler changes the authenticated user's profile
func UpdateMeHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		var req ProfileUpdateRequest              // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		user, err := s.UpdateProfile(c.Request.Context(), userID, req.DisplayName, req.Email)
		if err != nil {
			respondError(c, err, "Failed to update profile", nil)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ChangePasswordHandler replaces the authenticated user's password
func ChangePasswordHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.UserIDKey) // Get userID from context
		var req PasswordChangeRequest             // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if err := s.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
			respondError(c, err, "Failed to change password", nil)
			return
		}
		logrus.WithField("user_id", userID).Info("Password changed") // Audit trail
		c.Status(http.StatusNoContent)
	}
}
