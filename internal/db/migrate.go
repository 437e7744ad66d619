package db

import (
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Models lists every table of the ledger, parents before children
func Models() []any {
	return []any{
		&domain.User{},        // Users
		&domain.Account{},     // Accounts
		&domain.Category{},    // Categories
		&domain.Rule{},        // Recurring rules
		&domain.Transaction{}, // Ledger rows, reference all of the above
	}
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
