package db

import (
	"fmt"  // DSN formatting
	"time" // Pool lifetimes

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/config" // Custom import path (Config)

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM log levels
)

// DSN builds the Data Source Name for the configured driver
func DSN(cfg *config.Config) string {
	if cfg.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
}

// dialector picks the GORM driver named by DB_DRIVER
func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "", "mysql":
		return mysql.Open(DSN(cfg)), nil
	case "postgres":
		return postgres.Open(DSN(cfg)), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Open connects to the database and configures the connection pool
func Open(cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Warn // Only slow queries and errors in development
	if cfg.IsProd {
		level = logger.Error
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger:  logger.Default.LogMode(level),
		NowFunc: func() time.Time { return time.Now().UTC() }, // Timestamps in UTC like ledger dates
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)                  // Upper bound on concurrent queries
	sqlDB.SetMaxIdleConns(5)                   // Keep a few warm connections
	sqlDB.SetConnMaxLifetime(30 * time.Minute) // Recycle before the server drops idle connections
	return db, nil
}
