package api

import (
	"net/http" // HTTP status codes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for category creation
type CategoryRequest struct {
	Name string                 `json:"name" binding:"required"` // Category name
	Type domain.TransactionType `json:"type" binding:"required"` // income or expense
}

// ListCategoriesHandler returns the user's categories, ?type= filters by kind
func ListCategoriesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		typ := domain.TransactionType(c.Query("type")) // Optional filter
		categories, err := scopeOf(c, s).ListCategories(c.Request.Context(), typ)
		if err != nil {
			respondError(c, err, "Failed to fetch categories", nil)
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CreateCategoryHandler creates a category for the user
func CreateCategoryHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		category := domain.Category{Name: req.Name, Type: req.Type}
		if err := scopeOf(c, s).CreateCategory(c.Request.Context(), &category); err != nil {
			respondError(c, err, "Failed to create category", nil)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategoryHandler renames or retypes a category
func UpdateCategoryHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Category ID
		if !ok {
			return
		}
		var req store.CategoryUpdate // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		sc := scopeOf(c, s)
		category, err := sc.UpdateCategory(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err, "Failed to update category", logrus.Fields{"category_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Breakdown is keyed by name
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category and detaches it from transactions and rules
func DeleteCategoryHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Category ID
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		if err := sc.DeleteCategory(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete category", logrus.Fields{"category_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Drop cached summaries
		c.Status(http.StatusNoContent)
	}
}
