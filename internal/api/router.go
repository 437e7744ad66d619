package api

import (
	"net/http" // HTTP status codes
	"time"     // Durations

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/events"     // RabbitMQ events
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/middleware" // Custom middleware
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"      // User-scoped repository

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// DefaultRequestTimeout bounds each request when Deps leaves it unset
const DefaultRequestTimeout = 10 * time.Second

// Deps carries everything the handlers need
type Deps struct {
	Store          *store.Store     // Data access
	Redis          *redis.Client    // Optional, nil disables caching
	Publisher      events.Publisher // Optional, nil drops events
	JWTSecret      string           // HS256 signing key
	JWTTTL         time.Duration    // Token lifetime
	CacheTTL       time.Duration    // Dashboard cache lifetime
	RequestTimeout time.Duration    // Per-request deadline
}

// HealthHandler reports liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// NewRouter registers every route on a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	if d.Publisher == nil {
		d.Publisher = events.NopPublisher{} // Events disabled
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = time.Minute // Default dashboard cache lifetime
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = DefaultRequestTimeout
	}
	s, rdb := d.Store, d.Redis

	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.RequestTimeout(d.RequestTimeout))

	r.GET("/healthz", HealthHandler()) // Liveness endpoint

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/register", RegisterHandler(s))                  // Registration endpoint
	auth.POST("/login", LoginHandler(s, d.JWTSecret, d.JWTTTL)) // Login endpoint

	// Everything below requires a valid token of an active user
	private := r.Group("")
	private.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.ActiveUserMiddleware(s))

	users := private.Group("/users/me")
	users.GET("", GetMeHandler())                     // Own profile
	users.PATCH("", UpdateMeHandler(s))               // Update own profile
	users.POST("/password", ChangePasswordHandler(s)) // Change password

	accounts := private.Group("/accounts")
	accounts.GET("", ListAccountsHandler(s))              // List accounts with balances
	accounts.POST("", CreateAccountHandler(s, rdb))       // Create account
	accounts.GET("/:id", GetAccountHandler(s))            // Account with balance
	accounts.PUT("/:id", UpdateAccountHandler(s, rdb))    // Update account
	accounts.DELETE("/:id", DeleteAccountHandler(s, rdb)) // Delete account

	categories := private.Group("/categories")
	categories.GET("", ListCategoriesHandler(s))             // List categories
	categories.POST("", CreateCategoryHandler(s))            // Create category
	categories.PUT("/:id", UpdateCategoryHandler(s, rdb))    // Update category
	categories.DELETE("/:id", DeleteCategoryHandler(s, rdb)) // Delete category

	transactions := private.Group("/transactions")
	transactions.GET("", ListTransactionsHandler(s))                     // List with filters
	transactions.POST("", CreateTransactionHandler(s, rdb))              // Create transaction
	transactions.GET("/export", ExportTransactionsHandler(s))            // CSV or XLSX download
	transactions.GET("/:id", GetTransactionHandler(s))                   // Read transaction
	transactions.PATCH("/:id", UpdateTransactionHandler(s, rdb))         // Partial update
	transactions.DELETE("/:id", DeleteTransactionHandler(s, rdb))        // Delete transaction
	transactions.POST("/:id/confirm", ConfirmTransactionHandler(s, rdb)) // Confirm planned row

	rules := private.Group("/rules")
	rules.GET("", ListRulesHandler(s))                                          // List rules
	rules.POST("", CreateRuleHandler(s))                                        // Create rule
	rules.PATCH("/:id", UpdateRuleHandler(s))                                   // Partial update
	rules.DELETE("/:id", DeleteRuleHandler(s))                                  // Delete rule
	rules.POST("/expand/:year/:month", ExpandRulesHandler(s, rdb, d.Publisher)) // Generate planned rows

	dashboard := private.Group("/dashboard")
	dashboard.GET("/balance", BalanceRangeHandler(s))                                       // Balance for a date range
	dashboard.GET("/monthly/:year", MonthlySummaryHandler(s, rdb, d.CacheTTL))              // Income and expense per month
	dashboard.GET("/categories/:year/:month", CategoryBreakdownHandler(s, rdb, d.CacheTTL)) // Expense per category

	// Admin routes (superuser only)
	admin := private.Group("/admin")
	admin.Use(middleware.SuperuserOnlyMiddleware())
	admin.GET("/users", ListUsersHandler(s))                   // List users
	admin.PATCH("/users/:id", AdminUpdateUserHandler(s))       // Update user flags
	admin.DELETE("/users/:id", AdminDeleteUserHandler(s, rdb)) // Delete user and data

	return r
}
