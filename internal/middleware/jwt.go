package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// JWTAuthMiddleware validates bearer tokens and stores the user id in the context
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		// Check if the Authorization header is present and properly formatted
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		claims, err := utils.ParseJWT(strings.TrimSpace(tokenStr), secret) // Parse the JWT token
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": c.GetString(RequestIDKey), // Correlate with the access log
				"error":      err.Error(),               // Parse failure reason
			}).Debug("Rejected token")
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		c.Set(UserIDKey, claims.UserID) // Store userID in context
		c.Next()                        // Proceed to the next handler
	}
}
