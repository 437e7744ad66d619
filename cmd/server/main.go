package main

import (
	"context"   // context package is needed for Redis operations
	"errors"    // Server shutdown errors
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/api"    // Custom package for API handlers
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/config" // Custom package for configuration
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/db"     // Database connection
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/events" // RabbitMQ publisher
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/store"  // User-scoped repository
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils"  // Expansion locks

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// lockTTL caps how long a crashed expansion can hold its month
const lockTTL = 30 * time.Second

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{}) // Machine-readable logs in production
	}
	if cfg.JWTSecret == "" {
		logrus.Fatal("JWT_SECRET must be set")
	}

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	logrus.WithField("driver", cfg.DBDriver).Info("Connected to database")

	// Setup Redis client, optional
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, caching disabled and expansion locks are process-local")
	}
	if cfg.AMQPURL == "" {
		logrus.Warn("AMQP_URL not set, expansion events are dropped")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	s := store.New(gdb, utils.NewLocker(redisClient, lockTTL)) // Redis lock when available
	r := api.NewRouter(api.Deps{
		Store:     s,                                // Data access
		Redis:     redisClient,                      // Dashboard cache
		Publisher: events.NewPublisher(cfg.AMQPURL), // Expansion events
		JWTSecret: cfg.JWTSecret,                    // Token signing key
		JWTTTL:    cfg.JWTTTL,                       // Token lifetime
		CacheTTL:  cfg.CacheTTL,                     // Cache lifetime
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort, // Listen address
		Handler:           r,                 // Gin engine
		ReadHeaderTimeout: 5 * time.Second,   // Slowloris guard
	}
	go func() {
		logrus.Info("Server running on " + cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logrus.Info("Server stopped")
}
