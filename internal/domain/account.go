package domain

import "github.com/shopspring/decimal"

// Account Model. The current balance is derived from the ledger and is
// never persisted.
type Account struct {
	ID             uint            `gorm:"primaryKey" json:"id"`                               // Primary key
	UserID         uint            `gorm:"index;not null" json:"user_id"`                      // Owning user
	Name           string          `gorm:"size:128;not null" json:"name"`                      // Display name
	Type           string          `gorm:"size:32;not null" json:"type"`                       // Free-form tag: bank, cash, card...
	InitialBalance decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"initial_balance"` // Opening balance
	Balance        decimal.Decimal `gorm:"-" json:"current_balance"`                           // Derived, filled by the store
}
