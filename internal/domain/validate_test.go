package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateTransaction(t *testing.T) {
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		tx    Transaction
		field string // empty means valid
	}{
		{"expense ok", Transaction{Type: TypeExpense, State: StateConfirmed, OriginAccountID: ptr(uint(1)), CategoryID: ptr(uint(2))}, ""},
		{"expense without origin", Transaction{Type: TypeExpense, State: StateConfirmed, CategoryID: ptr(uint(2))}, "origin_account_id"},
		{"expense with destination", Transaction{Type: TypeExpense, State: StateConfirmed, OriginAccountID: ptr(uint(1)), DestinationAccountID: ptr(uint(3)), CategoryID: ptr(uint(2))}, "destination_account_id"},
		{"expense without category", Transaction{Type: TypeExpense, State: StateConfirmed, OriginAccountID: ptr(uint(1))}, "category_id"},
		{"income ok", Transaction{Type: TypeIncome, State: StateConfirmed, DestinationAccountID: ptr(uint(1)), CategoryID: ptr(uint(2))}, ""},
		{"income with origin", Transaction{Type: TypeIncome, State: StateConfirmed, OriginAccountID: ptr(uint(4)), DestinationAccountID: ptr(uint(1)), CategoryID: ptr(uint(2))}, "origin_account_id"},
		{"transfer ok", Transaction{Type: TypeTransfer, State: StateConfirmed, OriginAccountID: ptr(uint(1)), DestinationAccountID: ptr(uint(2))}, ""},
		{"transfer same account", Transaction{Type: TypeTransfer, State: StateConfirmed, OriginAccountID: ptr(uint(1)), DestinationAccountID: ptr(uint(1))}, "destination_account_id"},
		{"transfer missing side", Transaction{Type: TypeTransfer, State: StateConfirmed, OriginAccountID: ptr(uint(1))}, "account"},
		{"transfer with category", Transaction{Type: TypeTransfer, State: StateConfirmed, OriginAccountID: ptr(uint(1)), DestinationAccountID: ptr(uint(2)), CategoryID: ptr(uint(5))}, "category_id"},
		{"negative amount is a refund", Transaction{Type: TypeExpense, State: StateConfirmed, Amount: decimal.NewFromInt(-30), OriginAccountID: ptr(uint(1)), CategoryID: ptr(uint(2))}, ""},
		{"zero amount", Transaction{Type: TypeIncome, State: StateConfirmed, Amount: decimal.Zero, DestinationAccountID: ptr(uint(1)), CategoryID: ptr(uint(2))}, ""},
		{"planned expense skips completeness", Transaction{Type: TypeExpense, State: StatePlanned}, ""},
		{"unknown type", Transaction{Type: "gift", State: StateConfirmed}, "type"},
		{"unknown state", Transaction{Type: TypeIncome, State: "maybe"}, "state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := tc.tx
			tx.Date = date
			err := ValidateTransaction(&tx)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			if assert.True(t, errors.As(err, &ve)) {
				assert.Equal(t, tc.field, ve.Field)
			}
		})
	}
}

func TestValidateTransactionRequiresDate(t *testing.T) {
	err := ValidateTransaction(&Transaction{Type: TypeIncome, State: StatePlanned})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateRule(t *testing.T) {
	base := Rule{Description: "Salary", Type: TypeIncome, Frequency: FrequencyMonthly, Day: 25}
	assert.NoError(t, ValidateRule(&base))

	weekly := base
	weekly.Frequency, weekly.Day = FrequencyWeekly, 7
	assert.ErrorIs(t, ValidateRule(&weekly), ErrValidation)
	weekly.Day = 0
	assert.NoError(t, ValidateRule(&weekly))

	yearly := base
	yearly.Frequency = FrequencyYearly
	assert.ErrorIs(t, ValidateRule(&yearly), ErrValidation)
	yearly.Month = ptr(12)
	assert.NoError(t, ValidateRule(&yearly))

	transfer := base
	transfer.Type = TypeTransfer
	assert.ErrorIs(t, ValidateRule(&transfer), ErrValidation)

	unknown := base
	unknown.Frequency = "daily"
	assert.ErrorIs(t, ValidateRule(&unknown), ErrValidation)
}

func TestValidPeriodAndRange(t *testing.T) {
	assert.NoError(t, ValidPeriod(1))
	assert.NoError(t, ValidPeriod(12))
	assert.ErrorIs(t, ValidPeriod(0), ErrInvalidPeriod)
	assert.ErrorIs(t, ValidPeriod(13), ErrInvalidPeriod)

	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := a.AddDate(0, 0, 1)
	assert.NoError(t, ValidRange(a, a))
	assert.NoError(t, ValidRange(a, b))
	assert.ErrorIs(t, ValidRange(b, a), ErrInvalidRange)
}
