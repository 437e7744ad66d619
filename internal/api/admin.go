package api

import (
	"net/http" // HTTP status codes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"     // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/middleware" // Context keys
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"      // User repository

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ListUsersHandler returns one page of users
func ListUsersHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pageOf(c) // Pagination parameters
		users, total, err := s.ListUsers(c.Request.Context(), page)
		if err != nil {
			respondError(c, err, "Failed to fetch users", nil)
			return
		}
		c.JSON(http.StatusOK, newListResponse(users, page, total))
	}
}

// AdminUpdateUserHandler lets a superuser change flags of any user
func AdminUpdateUserHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Target user
		if !ok {
			return
		}
		var req store.AdminUserUpdate // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		user, err := s.AdminUpdateUser(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err, "Failed to update user", logrus.Fields{"target_user_id": id})
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":       c.GetUint(middleware.UserIDKey), // Acting superuser
			"target_user_id": id,                              // Changed user
		}).Info("User updated by admin")
		c.JSON(http.StatusOK, user)
	}
}

// AdminDeleteUserHandler removes a user and everything the user owns
func AdminDeleteUserHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Target user
		if !ok {
			return
		}
		// Refuse to delete the acting account
		if admin, _ := c.Get(middleware.UserKey); admin != nil && admin.(*domain.User).ID == id {
			badRequest(c, "Cannot delete yourself")
			return
		}
		if err := s.DeleteUser(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete user", logrus.Fields{"target_user_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, id) // Drop cached summaries
		logrus.WithFields(logrus.Fields{
			"admin_id":       c.GetUint(middleware.UserIDKey), // Acting superuser
			"target_user_id": id,                              // Deleted user
		}).Info("User deleted by admin")
		c.Status(http.StatusNoContent)
	}
}
