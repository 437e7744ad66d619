package api

import (
	"context"  // Context for Redis operations
	"fmt"      // Cache key formatting
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils"  // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Response struct for the monthly summary
type MonthlySummaryResponse struct {
	Year   int                `json:"year"`             // Requested year
	Months []store.MonthTotal `json:"months"`           // Always twelve entries
	Cached bool               `json:"cached,omitempty"` // Served from Redis
}

// Response struct for the category breakdown
type CategoryBreakdownResponse struct {
	Year       int                   `json:"year"`             // Requested year
	Month      int                   `json:"month"`            // Requested month
	Categories []store.CategoryTotal `json:"categories"`       // Largest first
	Cached     bool                  `json:"cached,omitempty"` // Served from Redis
}

func dashboardPrefix(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d:", userID)
}

// invalidateDashboard drops every cached summary of the user
func invalidateDashboard(ctx context.Context, rdb *redis.Client, userID uint) {
	if err := utils.DeleteCachePrefix(ctx, rdb, dashboardPrefix(userID)); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,      // Owner of the stale keys
			"error":   err.Error(), // Error message
		}).Warn("Failed to invalidate dashboard cache")
	}
}

// readCache loads a cached response into dest. An entry that no longer
// decodes is deleted so the next request recomputes and rewrites it.
func readCache(ctx context.Context, rdb *redis.Client, key string, dest any) bool {
	found, err := utils.GetCache(ctx, rdb, key, dest)
	if !found {
		return false // Miss, or Redis unavailable
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Dropping unreadable cache entry")
		_ = utils.DeleteCache(ctx, rdb, key) // Remove the undecodable entry
		return false
	}
	return true
}

// BalanceRangeHandler returns the balance before start and the transactions in [start, end]
func BalanceRangeHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := domain.ParseDate(c.Query("start")) // Inclusive start date
		if err != nil {
			respondError(c, err, "Invalid date", nil)
			return
		}
		end, err := domain.ParseDate(c.Query("end")) // Inclusive end date
		if err != nil {
			respondError(c, err, "Invalid date", nil)
			return
		}
		res, err := scopeOf(c, s).BalanceForRange(c.Request.Context(), start, end)
		if err != nil {
			respondError(c, err, "Failed to compute balance", logrus.Fields{"start": c.Query("start"), "end": c.Query("end")})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// MonthlySummaryHandler returns confirmed income and expense per month of a year
func MonthlySummaryHandler(s *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := pathInt(c, "year") // Requested year
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("%smonthly:%04d", dashboardPrefix(sc.UserID()), year) // Cache key for this user and year
		var cached MonthlySummaryResponse
		// If cached data found, return it
		if readCache(ctx, rdb, cacheKey, &cached) {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		months, err := sc.MonthlySummary(ctx, year)
		if err != nil {
			respondError(c, err, "Failed to compute monthly summary", logrus.Fields{"year": year})
			return
		}
		resp := MonthlySummaryResponse{Year: year, Months: months[:]}
		// Cache the response, a failure only costs a recomputation
		if err := utils.SetCache(ctx, rdb, cacheKey, resp, ttl); err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Failed to cache monthly summary")
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CategoryBreakdownHandler returns the confirmed expense of a month per category
func CategoryBreakdownHandler(s *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, ok := pathInt(c, "year") // Requested year
		if !ok {
			return
		}
		month, ok := pathInt(c, "month") // Requested month
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		ctx := c.Request.Context()
		cacheKey := fmt.Sprintf("%scategories:%04d-%02d", dashboardPrefix(sc.UserID()), year, month) // Cache key for this user and month
		var cached CategoryBreakdownResponse
		// If cached data found, return it
		if readCache(ctx, rdb, cacheKey, &cached) {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		totals, err := sc.CategoryBreakdown(ctx, year, month)
		if err != nil {
			respondError(c, err, "Failed to compute category breakdown", logrus.Fields{"year": year, "month": month})
			return
		}
		resp := CategoryBreakdownResponse{Year: year, Month: month, Categories: totals}
		if err := utils.SetCache(ctx, rdb, cacheKey, resp, ttl); err != nil {
			logrus.WithFields(logrus.Fields{"key": cacheKey, "error": err.Error()}).Warn("Failed to cache category breakdown")
		}
		c.JSON(http.StatusOK, resp)
	}
}
