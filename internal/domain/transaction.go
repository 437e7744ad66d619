package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger movement. Categories and rules
// use the income and expense values only.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// IsFlow reports whether t is income or expense.
func (t TransactionType) IsFlow() bool {
	return t == TypeIncome || t == TypeExpense
}

// TransactionState is the lifecycle state of a transaction.
type TransactionState string

const (
	StateConfirmed TransactionState = "confirmed"
	StatePlanned   TransactionState = "planned"
)

// Valid reports whether s is a known state.
func (s TransactionState) Valid() bool {
	return s == StateConfirmed || s == StatePlanned
}

// Transaction Model
type Transaction struct {
	ID                   uint             `gorm:"primaryKey" json:"id"`                      // Primary key
	UserID               uint             `gorm:"index;not null" json:"user_id"`             // Owning user
	Date                 time.Time        `gorm:"type:date;index;not null" json:"date"`      // Ledger date, UTC midnight
	Amount               decimal.Decimal  `gorm:"type:decimal(14,2);not null" json:"amount"` // Signed amount
	Type                 TransactionType  `gorm:"size:16;index;not null" json:"type"`        // income, expense or transfer
	Description          string           `gorm:"size:255" json:"description"`               // Optional free text
	State                TransactionState `gorm:"size:16;index;not null" json:"state"`       // confirmed or planned
	OriginAccountID      *uint            `gorm:"index" json:"origin_account_id"`            // Debited account
	DestinationAccountID *uint            `gorm:"index" json:"destination_account_id"`       // Credited account
	CategoryID           *uint            `gorm:"index" json:"category_id"`                  // Classification
	RuleID               *uint            `gorm:"index" json:"rule_id"`                      // Generating rule, if any

	// Relations exist only so AutoMigrate emits the foreign keys.
	OriginAccount      *Account  `gorm:"foreignKey:OriginAccountID;constraint:OnDelete:SET NULL" json:"-"`
	DestinationAccount *Account  `gorm:"foreignKey:DestinationAccountID;constraint:OnDelete:SET NULL" json:"-"`
	Category           *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Rule               *Rule     `gorm:"foreignKey:RuleID;constraint:OnDelete:SET NULL" json:"-"`
}

type transactionJSON Transaction

// MarshalJSON writes Date as YYYY-MM-DD.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		transactionJSON
		Date string `json:"date"`
	}{transactionJSON(t), t.Date.Format(DateLayout)})
}

// UnmarshalJSON accepts YYYY-MM-DD or a full RFC 3339 timestamp for Date.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	aux := struct {
		*transactionJSON
		Date string `json:"date"`
	}{transactionJSON: (*transactionJSON)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		return nil
	}
	if d, err := time.Parse(time.RFC3339, aux.Date); err == nil {
		t.Date = DateOf(d)
		return nil
	}
	d, err := ParseDate(aux.Date)
	if err != nil {
		return err
	}
	t.Date = d
	return nil
}
