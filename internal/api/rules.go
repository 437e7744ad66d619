package api

import (
	"context"  // Background publish
	"net/http" // HTTP status codes
	"time"     // Event timestamp

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/events" // RabbitMQ events
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// publishTimeout bounds the best-effort event publish after an expansion
const publishTimeout = 5 * time.Second

// Request struct for rule creation
type RuleRequest struct {
	Description string                 `json:"description" binding:"required"` // Copied to generated rows
	Amount      decimal.Decimal        `json:"amount"`                         // Default amount
	Type        domain.TransactionType `json:"type" binding:"required"`        // income or expense
	Frequency   domain.Frequency       `json:"frequency" binding:"required"`   // monthly, weekly or yearly
	Day         int                    `json:"day"`                            // Day of month or weekday (0=Monday)
	Month       *int                   `json:"month"`                          // Yearly rules only
	CategoryID  *uint                  `json:"category_id"`                    // Default category
	IsActive    *bool                  `json:"is_active"`                      // Defaults to true
}

// Response struct for an expansion
type ExpandResponse struct {
	Year         int                  `json:"year"`         // Expanded year
	Month        int                  `json:"month"`        // Expanded month
	Generated    int                  `json:"generated"`    // Number of planned rows
	Transactions []domain.Transaction `json:"transactions"` // The planned rows
}

// ListRulesHandler returns the user's recurring rules
func ListRulesHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		rules, err := scopeOf(c, s).ListRules(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch rules", nil)
			return
		}
		c.JSON(http.StatusOK, rules)
	}
}

// CreateRuleHandler creates a recurring rule
func CreateRuleHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RuleRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		active := true // New rules fire unless told otherwise
		if req.IsActive != nil {
			active = *req.IsActive
		}
		rule := domain.Rule{
			Description: req.Description, // Description
			Amount:      req.Amount,      // Default amount
			Type:        req.Type,        // income or expense
			Frequency:   req.Frequency,   // Frequency
			Day:         req.Day,         // Day of month or weekday
			Month:       req.Month,       // Yearly month
			CategoryID:  req.CategoryID,  // Default category
			IsActive:    active,          // Active flag
		}
		if err := scopeOf(c, s).CreateRule(c.Request.Context(), &rule); err != nil {
			respondError(c, err, "Failed to create rule", nil)
			return
		}
		c.JSON(http.StatusCreated, rule)
	}
}

// UpdateRuleHandler applies a partial update to a rule
func UpdateRuleHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Rule ID
		if !ok {
			return
		}
		var req store.RuleUpdate // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		rule, err := scopeOf(c, s).UpdateRule(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err, "Failed to update rule", logrus.Fields{"rule_id": id})
			return
		}
		c.JSON(http.StatusOK, rule)
	}
}

// DeleteRuleHandler removes a rule, generated transactions stay
func DeleteRuleHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Rule ID
		if !ok {
			return
		}
		if err := scopeOf(c, s).DeleteRule(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete rule", logrus.Fields{"rule_id": id})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// ExpandRulesHandler regenerates the planned transactions of a month
func ExpandRulesHandler(s *store.Store, rdb *redis.Client, pub events.Publisher) gin.HandlerFunc {
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
		generated, err := sc.ExpandRules(c.Request.Context(), year, month)
		if err != nil {
			respondError(c, err, "Failed to expand rules", logrus.Fields{"year": year, "month": month})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Planned rows changed
		logrus.WithFields(logrus.Fields{
			"user_id":   sc.UserID(),    // Owner
			"year":      year,           // Expanded year
			"month":     month,          // Expanded month
			"generated": len(generated), // Planned rows written
		}).Info("Rules expanded")

		ev := events.RulesExpanded{
			UserID:     sc.UserID(),      // Owner
			Year:       year,             // Expanded year
			Month:      month,            // Expanded month
			Generated:  len(generated),   // Planned rows written
			ExpandedAt: time.Now().UTC(), // Commit time
		}
		// Best effort, the expansion is already committed
		ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
		defer cancel()
		if err := pub.PublishRulesExpanded(ctx, ev); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": sc.UserID(), // Owner
				"queue":   events.RulesExpandedQueue,
				"error":   err.Error(), // Error message
			}).Warn("Failed to publish expansion event")
		}

		c.JSON(http.StatusOK, ExpandResponse{Year: year, Month: month, Generated: len(generated), Transactions: generated})
	}
}
