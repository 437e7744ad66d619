package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For driver name normalisation
	"time"    // For TTL durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string        // Application port
	DBDriver   string        // mysql or postgres
	DBUser     string        // Database user
	DBPassword string        // Database password
	DBHost     string        // Database host
	DBPort     string        // Database port
	DBName     string        // Database name
	JWTSecret  string        // JWT secret key
	JWTTTL     time.Duration // Token lifetime
	RedisAddr  string        // Redis server address, empty disables Redis
	RedisPass  string        // Redis password
	RedisDB    int           // Redis database number
	CacheTTL   time.Duration // Dashboard cache lifetime
	AMQPURL    string        // RabbitMQ URL, empty disables events
	IsProd     bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	driver := strings.ToLower(getenv("DB_DRIVER", "mysql"))
	defaultPort := "3306"
	if driver == "postgres" {
		defaultPort = "5432"
	}
	return &Config{
		AppPort:    getenv("APP_PORT", "8080"),                            // Application port
		DBUser:     os.Getenv("DB_USER"),                                  // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),                              // Database password
		DBHost:     getenv("DB_HOST", "127.0.0.1"),                        // Database host
		DBDriver:   driver,                                                // Database driver
		DBPort:     getenv("DB_PORT", defaultPort),                        // Database port
		DBName:     os.Getenv("DB_NAME"),                                  // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),                               // JWT secret key
		JWTTTL:     durationEnv("JWT_TTL_HOURS", time.Hour, 24*time.Hour), // Token lifetime in hours
		RedisAddr:  os.Getenv("REDIS_ADDR"),                               // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),                               // Redis password
		RedisDB:    redisDB,                                               // Redis database number
		CacheTTL:   durationEnv("CACHE_TTL", time.Second, 60*time.Second), // Cache lifetime in seconds
		AMQPURL:    os.Getenv("AMQP_URL"),                                 // RabbitMQ URL
		IsProd:     os.Getenv("IS_PROD") == "true",                        // Is production environment
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// durationEnv reads a positive integer count of unit, or returns fallback
func durationEnv(key string, unit, fallback time.Duration) time.Duration {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * unit
}
