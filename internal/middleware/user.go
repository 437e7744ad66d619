package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User lookups

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Context keys shared with the handlers
const (
	UserIDKey    = "userID"    // uint, set by JWTAuthMiddleware
	UserKey      = "user"      // *domain.User, set by ActiveUserMiddleware
	RequestIDKey = "requestID" // string, set by RequestLogger
)

// ActiveUserMiddleware loads the authenticated user and rejects deactivated accounts
func ActiveUserMiddleware(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(UserIDKey) // Get userID from context
		// Check if userID exists in context
		if userID == 0 {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := s.GetUser(c.Request.Context(), userID) // Fetch user from database
		if errors.Is(err, domain.ErrNotFound) {
			// Token outlived its user
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Authenticated user
				"error":   err.Error(), // Error message
			}).Error("Failed to load user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		// Deactivated users keep valid tokens but lose access
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User is inactive"})
			return
		}
		c.Set(UserKey, user) // Store user in context
		c.Next()             // Proceed to the next handler
	}
}

// SuperuserOnlyMiddleware requires ActiveUserMiddleware to run first
func SuperuserOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := c.Get(UserKey) // Get user from context
		u, _ := user.(*domain.User)
		// Check if user is a superuser
		if !ok || u == nil || !u.IsSuperuser {
			// If not superuser, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Superuser access required"})
			return
		}
		// If superuser, proceed to the next handler
		c.Next()
	}
}
