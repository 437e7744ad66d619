package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// balanceFromRows folds confirmed rows touching accountID onto initial.
func balanceFromRows(accountID uint, initial decimal.Decimal, txs []domain.Transaction) decimal.Decimal {
	incoming, outgoing := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		if tx.State != domain.StateConfirmed {
			continue
		}
		if tx.DestinationAccountID != nil && *tx.DestinationAccountID == accountID {
			incoming = incoming.Add(tx.Amount)
		}
		if tx.OriginAccountID != nil && *tx.OriginAccountID == accountID {
			outgoing = outgoing.Add(tx.Amount)
		}
	}
	return domain.DeriveBalance(initial, incoming, outgoing)
}

type ledgerFixture struct {
	sc        *Scope
	checking  *domain.Account
	savings   *domain.Account
	food      *domain.Category
	transport *domain.Category
}

func seedLedger(t *testing.T) ledgerFixture {
	s, gdb := newTestStore(t)
	sc := s.ForUser(seedUser(t, gdb))
	f := ledgerFixture{
		sc:        sc,
		checking:  seedAccount(t, sc, "Checking", 1000),
		savings:   seedAccount(t, sc, "Savings", 0),
		food:      seedCategory(t, sc, "Food", domain.TypeExpense),
		transport: seedCategory(t, sc, "Transport", domain.TypeExpense),
	}
	salary := seedCategory(t, sc, "Salary", domain.TypeIncome)

	rows := []domain.Transaction{
		{Date: date(2025, time.January, 10), Amount: money("500"), Type: domain.TypeIncome, DestinationAccountID: &f.checking.ID, CategoryID: &salary.ID},
		{Date: date(2025, time.January, 20), Amount: money("200"), Type: domain.TypeExpense, OriginAccountID: &f.checking.ID, CategoryID: &f.food.ID},
		{Date: date(2025, time.February, 5), Amount: money("100"), Type: domain.TypeTransfer, OriginAccountID: &f.checking.ID, DestinationAccountID: &f.savings.ID},
		{Date: date(2025, time.February, 10), Amount: money("50"), Type: domain.TypeExpense, OriginAccountID: &f.savings.ID, CategoryID: &f.food.ID},
		{Date: date(2025, time.February, 12), Amount: money("30"), Type: domain.TypeExpense, OriginAccountID: &f.checking.ID, CategoryID: &f.transport.ID},
		{Date: date(2025, time.February, 13), Amount: money("20"), Type: domain.TypeExpense, OriginAccountID: &f.checking.ID, CategoryID: &f.food.ID},
		{Date: date(2025, time.February, 15), Amount: money("999"), Type: domain.TypeExpense, State: domain.StatePlanned, CategoryID: &f.food.ID},
		{Date: date(2025, time.February, 28), Amount: money("25"), Type: domain.TypeIncome, DestinationAccountID: &f.savings.ID, CategoryID: &salary.ID},
		{Date: date(2025, time.March, 1), Amount: money("10"), Type: domain.TypeExpense, OriginAccountID: &f.checking.ID, CategoryID: &f.food.ID},
	}
	for _, tx := range rows {
		seedTx(t, sc, tx)
	}
	return f
}

func TestBalanceForRange(t *testing.T) {
	f := seedLedger(t)
	ctx := context.Background()
	start, end := date(2025, time.February, 1), date(2025, time.February, 28)

	res, err := f.sc.BalanceForRange(ctx, start, end)
	require.NoError(t, err)
	assertMoney(t, "1300", res.StartBalance)
	assertMoney(t, "1225", res.EndBalance)

	require.Len(t, res.Transactions, 6)
	assert.Equal(t, date(2025, time.February, 28), res.Transactions[0].Date)
	assert.Equal(t, date(2025, time.February, 5), res.Transactions[5].Date)
	for i := 1; i < len(res.Transactions); i++ {
		assert.False(t, res.Transactions[i].Date.After(res.Transactions[i-1].Date))
	}
}

func TestBalanceForRangeMatchesAccountsDayBefore(t *testing.T) {
	f := seedLedger(t)
	ctx := context.Background()
	start := date(2025, time.February, 13)

	res, err := f.sc.BalanceForRange(ctx, start, start)
	require.NoError(t, err)

	before, _, err := f.sc.ListTransactions(ctx, TransactionFilter{To: start.AddDate(0, 0, -1), Page: Page{Size: 100}})
	require.NoError(t, err)
	want := decimal.Zero
	for _, a := range []*domain.Account{f.checking, f.savings} {
		want = want.Add(balanceFromRows(a.ID, a.InitialBalance, before))
	}
	assertMoney(t, want.String(), res.StartBalance)
	assertMoney(t, "1220", res.StartBalance)
	assert.Len(t, res.Transactions, 1)

	through, _, err := f.sc.ListTransactions(ctx, TransactionFilter{To: start, Page: Page{Size: 100}})
	require.NoError(t, err)
	want = decimal.Zero
	for _, a := range []*domain.Account{f.checking, f.savings} {
		want = want.Add(balanceFromRows(a.ID, a.InitialBalance, through))
	}
	assertMoney(t, want.String(), res.EndBalance)
	assertMoney(t, "1200", res.EndBalance)
}

func TestBalanceForRangeRejectsInvertedRange(t *testing.T) {
	f := seedLedger(t)
	_, err := f.sc.BalanceForRange(context.Background(), date(2025, time.March, 2), date(2025, time.March, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestMonthlySummary(t *testing.T) {
	f := seedLedger(t)
	got, err := f.sc.MonthlySummary(context.Background(), 2025)
	require.NoError(t, err)

	require.Len(t, got, 12)
	for i, m := range got {
		assert.Equal(t, i+1, m.Month)
	}
	assertMoney(t, "500", got[0].Income)
	assertMoney(t, "200", got[0].Expense)
	assertMoney(t, "25", got[1].Income)
	assertMoney(t, "100", got[1].Expense)
	assertMoney(t, "0", got[2].Income)
	assertMoney(t, "10", got[2].Expense)
	for _, m := range got[3:] {
		assert.True(t, m.Income.IsZero())
		assert.True(t, m.Expense.IsZero())
	}

	empty, err := f.sc.MonthlySummary(context.Background(), 1999)
	require.NoError(t, err)
	assert.Len(t, empty, 12)
	assert.True(t, empty[5].Income.IsZero())
}

func TestCategoryBreakdown(t *testing.T) {
	f := seedLedger(t)
	ctx := context.Background()

	got, err := f.sc.CategoryBreakdown(ctx, 2025, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Category)
	assertMoney(t, "70", got[0].Total)
	assert.Equal(t, "Transport", got[1].Category)
	assertMoney(t, "30", got[1].Total)

	none, err := f.sc.CategoryBreakdown(ctx, 2025, 6)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = f.sc.CategoryBreakdown(ctx, 2025, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}
