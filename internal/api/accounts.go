package api

import (
	"net/http" // HTTP status codes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// Request struct for account creation
type AccountRequest struct {
	Name           string          `json:"name" binding:"required"` // Display name
	Type           string          `json:"type" binding:"required"` // Free-form tag
	InitialBalance decimal.Decimal `json:"initial_balance"`         // Opening balance, zero if omitted
}

// ListAccountsHandler returns the user's accounts with current balances
func ListAccountsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := scopeOf(c, s).ListAccounts(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch accounts", nil)
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}

// CreateAccountHandler creates an account for the user
func CreateAccountHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AccountRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		sc := scopeOf(c, s)
		account := domain.Account{Name: req.Name, Type: req.Type, InitialBalance: req.InitialBalance}
		if err := sc.CreateAccount(c.Request.Context(), &account); err != nil {
			respondError(c, err, "Failed to create account", nil)
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Totals include initial balances
		c.JSON(http.StatusCreated, account)
	}
}

// GetAccountHandler returns one account with its current balance
func GetAccountHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Account ID
		if !ok {
			return
		}
		account, err := scopeOf(c, s).GetAccount(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to fetch account", logrus.Fields{"account_id": id})
			return
		}
		c.JSON(http.StatusOK, account)
	}
}

// UpdateAccountHandler changes name, type or initial balance
func UpdateAccountHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Account ID
		if !ok {
			return
		}
		var req store.AccountUpdate // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		sc := scopeOf(c, s)
		account, err := sc.UpdateAccount(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err, "Failed to update account", logrus.Fields{"account_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Initial balance may have changed
		c.JSON(http.StatusOK, account)
	}
}

// DeleteAccountHandler removes an account, its transactions stay unlinked
func DeleteAccountHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Account ID
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		if err := sc.DeleteAccount(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete account", logrus.Fields{"account_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Drop cached summaries
		c.Status(http.StatusNoContent)
	}
}
