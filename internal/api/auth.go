package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store" // User repository
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Email       string `json:"email" binding:"required"`    // Email must be provided
	Password    string `json:"password" binding:"required"` // Password must be provided
	DisplayName string `json:"display_name"`                // Optional display name
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token     string `json:"token"`      // JWT token
	TokenType string `json:"token_type"` // Always bearer
	ExpiresIn int64  `json:"expires_in"` // Lifetime in seconds
}

// RegisterHandler creates an active user account
func RegisterHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		// Email format, password length and uniqueness are checked by the store
		user, err := s.CreateUser(c.Request.Context(), req.Email, req.Password, req.DisplayName)
		if err != nil {
			respondError(c, err, "Failed to register user", logrus.Fields{"email": req.Email})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Normalized email
		}).Info("User registered")
		// Return the created user
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(s *store.Store, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = utils.DefaultTokenTTL // Same fallback as token generation
	}
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			badRequest(c, "Invalid request")
			return
		}
		// Unknown email, wrong password and inactive user all map to 401
		user, err := s.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err, "Failed to authenticate", nil)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret, ttl)
		if err != nil {
			respondError(c, err, "Failed to generate token", logrus.Fields{"user_id": user.ID})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token, TokenType: "bearer", ExpiresIn: int64(ttl.Seconds())})
	}
}
