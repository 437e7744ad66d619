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

// Request struct for transaction creation
type TransactionRequest struct {
	Date                 string                  `json:"date" binding:"required"` // YYYY-MM-DD
	Amount               decimal.Decimal         `json:"amount"`                  // Rounded to cents
	Type                 domain.TransactionType  `json:"type" binding:"required"` // income, expense or transfer
	Description          string                  `json:"description"`             // Optional free text
	State                domain.TransactionState `json:"state"`                   // Defaults to confirmed
	OriginAccountID      *uint                   `json:"origin_account_id"`       // Debited account
	DestinationAccountID *uint                   `json:"destination_account_id"`  // Credited account
	CategoryID           *uint                   `json:"category_id"`             // Classification
}

// Request struct for a partial transaction update, null clears a reference
type TransactionPatchRequest struct {
	Date *string `json:"date"` // YYYY-MM-DD
	store.TransactionUpdate
}

// filterOf reads the transaction filter query parameters, writing a 400 on bad input
func filterOf(c *gin.Context) (store.TransactionFilter, bool) {
	filter := store.TransactionFilter{
		State: domain.TransactionState(c.Query("state")), // Optional state filter
		Type:  domain.TransactionType(c.Query("type")),   // Optional type filter
		Page:  pageOf(c),                                 // Pagination parameters
	}
	if filter.State != "" && !filter.State.Valid() {
		badRequest(c, "Invalid state")
		return filter, false
	}
	if filter.Type != "" && !filter.Type.Valid() {
		badRequest(c, "Invalid type")
		return filter, false
	}
	if c.Query("account_id") != "" {
		id, ok := queryID(c, "account_id") // Optional account filter
		if !ok {
			return filter, false
		}
		filter.AccountID = id
	}
	var err error
	if v := c.Query("from"); v != "" {
		if filter.From, err = domain.ParseDate(v); err != nil {
			respondError(c, err, "Invalid date", nil)
			return filter, false
		}
	}
	if v := c.Query("to"); v != "" {
		if filter.To, err = domain.ParseDate(v); err != nil {
			respondError(c, err, "Invalid date", nil)
			return filter, false
		}
	}
	if !filter.From.IsZero() && !filter.To.IsZero() {
		if err := domain.ValidRange(filter.From, filter.To); err != nil {
			respondError(c, err, "Invalid range", nil)
			return filter, false
		}
	}
	return filter, true
}

// ListTransactionsHandler returns the user's transactions, newest first
func ListTransactionsHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter, ok := filterOf(c)
		if !ok {
			return
		}
		txs, total, err := scopeOf(c, s).ListTransactions(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err, "Failed to fetch transactions", nil)
			return
		}
		c.JSON(http.StatusOK, newListResponse(txs, filter.Page, total))
	}
}

// CreateTransactionHandler records a manual transaction
func CreateTransactionHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		date, err := domain.ParseDate(req.Date) // Ledger date
		if err != nil {
			respondError(c, err, "Invalid date", nil)
			return
		}
		tx := domain.Transaction{
			Date:                 date,                     // Ledger date
			Amount:               req.Amount,               // Amount
			Type:                 req.Type,                 // Transaction type
			Description:          req.Description,          // Free text
			State:                req.State,                // Empty means confirmed
			OriginAccountID:      req.OriginAccountID,      // Pointer to handle nullability
			DestinationAccountID: req.DestinationAccountID, // Pointer to handle nullability
			CategoryID:           req.CategoryID,           // Pointer to handle nullability
		}
		sc := scopeOf(c, s)
		if err := sc.CreateTransaction(c.Request.Context(), &tx); err != nil {
			respondError(c, err, "Failed to create transaction", nil)
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Summaries are stale
		logrus.WithFields(logrus.Fields{
			"user_id":        sc.UserID(), // Owner
			"transaction_id": tx.ID,       // New transaction
			"type":           tx.Type,     // Transaction type
			"state":          tx.State,    // Lifecycle state
		}).Info("Transaction created")
		c.JSON(http.StatusCreated, tx)
	}
}

// GetTransactionHandler returns one transaction
func GetTransactionHandler(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Transaction ID
		if !ok {
			return
		}
		tx, err := scopeOf(c, s).GetTransaction(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to fetch transaction", logrus.Fields{"transaction_id": id})
			return
		}
		c.JSON(http.StatusOK, tx)
	}
}

// UpdateTransactionHandler applies a partial update and revalidates the row
func UpdateTransactionHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Transaction ID
		if !ok {
			return
		}
		var req TransactionPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid request")
			return
		}
		if req.Date != nil {
			date, err := domain.ParseDate(*req.Date)
			if err != nil {
				respondError(c, err, "Invalid date", nil)
				return
			}
			req.TransactionUpdate.Date = &date
		}
		sc := scopeOf(c, s)
		tx, err := sc.UpdateTransaction(c.Request.Context(), id, req.TransactionUpdate)
		if err != nil {
			respondError(c, err, "Failed to update transaction", logrus.Fields{"transaction_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Summaries are stale
		c.JSON(http.StatusOK, tx)
	}
}

// ConfirmTransactionHandler turns a planned transaction into a confirmed one
func ConfirmTransactionHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Transaction ID
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		tx, err := sc.ConfirmTransaction(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "Failed to confirm transaction", logrus.Fields{"transaction_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Confirmed rows count now
		logrus.WithFields(logrus.Fields{
			"user_id":        sc.UserID(), // Owner
			"transaction_id": tx.ID,       // Confirmed transaction
			"amount":         tx.Amount,   // Amount
		}).Info("Transaction confirmed")
		c.JSON(http.StatusOK, tx)
	}
}

// DeleteTransactionHandler removes one transaction
func DeleteTransactionHandler(s *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id") // Transaction ID
		if !ok {
			return
		}
		sc := scopeOf(c, s)
		if err := sc.DeleteTransaction(c.Request.Context(), id); err != nil {
			respondError(c, err, "Failed to delete transaction", logrus.Fields{"transaction_id": id})
			return
		}
		invalidateDashboard(c.Request.Context(), rdb, sc.UserID()) // Summaries are stale
		c.Status(http.StatusNoContent)
	}
}
