package middleware

import (
	"context" // Request deadlines
	"time"    // Timeout duration

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequestTimeout bounds the database work of every request
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx) // Handlers pass this context to the store
		c.Next()
	}
}
