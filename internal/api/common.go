package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"     // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/middleware" // Context keys
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"      // User-scoped repository

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// ListResponse wraps one page of results
type ListResponse[T any] struct {
	Items      []T   `json:"items"`       // Rows of the page
	Page       int   `json:"page"`        // Current page
	PageSize   int   `json:"page_size"`   // Page size
	Total      int64 `json:"total"`       // Total number of rows
	TotalPages int   `json:"total_pages"` // Total pages
}

func newListResponse[T any](items []T, page store.Page, total int64) ListResponse[T] {
	if items == nil {
		items = []T{} // Always encode an array
	}
	return ListResponse[T]{
		Items:      items,
		Page:       page.Number,
		PageSize:   page.Size,
		Total:      total,
		TotalPages: (int(total) + page.Size - 1) / page.Size, // Round up
	}
}

// respondError maps store and domain errors onto HTTP statuses.
// Unexpected errors are logged with fields and hidden from the client.
func respondError(c *gin.Context, err error, msg string, fields logrus.Fields) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, domain.ErrInvalidPeriod), errors.Is(err, domain.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if fields == nil {
			fields = logrus.Fields{}
		}
		fields["error"] = err.Error()                               // Error message
		fields["user_id"] = c.GetUint(middleware.UserIDKey)         // Authenticated user, if any
		fields["request_id"] = c.GetString(middleware.RequestIDKey) // Correlation id
		logrus.WithFields(fields).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// badRequest answers malformed input that never reached the store
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// scopeOf returns the data scope of the authenticated user
func scopeOf(c *gin.Context, s *store.Store) *store.Scope {
	return s.ForUser(c.GetUint(middleware.UserIDKey))
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// queryID parses a positive numeric query parameter
func queryID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// pathInt parses an integer path parameter such as a year or month
func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		badRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// pageOf reads page and page_size from the query string
func pageOf(c *gin.Context) store.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))           // Default page number
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20")) // Default page size
	return store.Page{Number: page, Size: pageSize}.Normalize()    // Clamp to limits
}
