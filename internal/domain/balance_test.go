package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeriveBalance(t *testing.T) {
	got := DeriveBalance(decimal.NewFromInt(1000), decimal.NewFromInt(500), decimal.NewFromInt(200))
	assert.Equal(t, "1300", got.String())
	assert.Equal(t, "-50", DeriveBalance(decimal.Zero, decimal.Zero, decimal.NewFromInt(50)).String())
}

func TestNetEffect(t *testing.T) {
	amt := decimal.RequireFromString("12.50")
	assert.True(t, NetEffect(Transaction{Type: TypeIncome, State: StateConfirmed, Amount: amt}).Equal(amt))
	assert.True(t, NetEffect(Transaction{Type: TypeExpense, State: StateConfirmed, Amount: amt}).Equal(amt.Neg()))
	assert.True(t, NetEffect(Transaction{Type: TypeTransfer, State: StateConfirmed, Amount: amt}).IsZero())
	assert.True(t, NetEffect(Transaction{Type: TypeIncome, State: StatePlanned, Amount: amt}).IsZero())
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "10.13", RoundMoney(decimal.RequireFromString("10.125")).String())
	assert.Equal(t, "-10.13", RoundMoney(decimal.RequireFromString("-10.125")).String())
}
