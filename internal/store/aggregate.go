package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// MonthTotal is the confirmed income and expense of one month.
type MonthTotal struct {
	Month   int             `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is the confirmed expense booked under one category name.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// RangeResult is the balance at the start of a range, the balance after
// its last day, and the transactions dated inside it.
type RangeResult struct {
	StartBalance decimal.Decimal      `json:"start_balance"`
	EndBalance   decimal.Decimal      `json:"end_balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

// BalanceForRange computes the user's total balance just before start and
// after end, and lists every transaction in [start, end], newest first.
// Transfers and planned rows do not change the totals.
func (sc *Scope) BalanceForRange(ctx context.Context, start, end time.Time) (*RangeResult, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)
	if err := domain.ValidRange(start, end); err != nil {
		return nil, err
	}

	var initial decimal.Decimal
	row := sc.q(ctx).Model(&domain.Account{}).Select("COALESCE(SUM(initial_balance), 0)").Row()
	if err := row.Scan(&initial); err != nil {
		return nil, fmt.Errorf("sum initial balances: %w", err)
	}

	var net decimal.Decimal
	row = sc.q(ctx).Model(&domain.Transaction{}).
		Select("COALESCE(SUM(CASE WHEN type = ? THEN amount WHEN type = ? THEN -amount ELSE 0 END), 0)",
			domain.TypeIncome, domain.TypeExpense).
		Where("state = ? AND date < ?", domain.StateConfirmed, start).
		Row()
	if err := row.Scan(&net); err != nil {
		return nil, fmt.Errorf("sum flows: %w", err)
	}

	txs := []domain.Transaction{}
	err := sc.q(ctx).
		Where("date >= ? AND date <= ?", start, end).
		Order("date DESC").Order("id DESC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	res := &RangeResult{StartBalance: initial.Add(net), Transactions: txs}
	res.EndBalance = res.StartBalance
	for _, tx := range txs {
		res.EndBalance = res.EndBalance.Add(domain.NetEffect(tx))
	}
	return res, nil
}

type monthRow struct {
	PeriodMonth int
	Type        domain.TransactionType
	Total       decimal.Decimal
}

// MonthlySummary returns twelve entries, January first. Months without
// confirmed activity are zero.
func (sc *Scope) MonthlySummary(ctx context.Context, year int) ([12]MonthTotal, error) {
	var out [12]MonthTotal
	for i := range out {
		out[i] = MonthTotal{Month: i + 1, Income: decimal.Zero, Expense: decimal.Zero}
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	var rows []monthRow
	err := sc.q(ctx).Model(&domain.Transaction{}).
		Select(monthExpr(sc.db)+" AS period_month, type, COALESCE(SUM(amount), 0) AS total").
		Where("state = ? AND type IN ? AND date >= ? AND date < ?",
			domain.StateConfirmed, []domain.TransactionType{domain.TypeIncome, domain.TypeExpense}, from, to).
		Group("period_month, type").
		Scan(&rows).Error
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
			continue
		}
		m := &out[r.PeriodMonth-1]
		if r.Type == domain.TypeIncome {
			m.Income = m.Income.Add(r.Total)
		} else {
			m.Expense = m.Expense.Add(r.Total)
		}
	}
	return out, nil
}

// CategoryBreakdown returns the confirmed expense of the month grouped by
// category name, largest first.
func (sc *Scope) CategoryBreakdown(ctx context.Context, year, month int) ([]CategoryTotal, error) {
	if err := domain.ValidPeriod(month); err != nil {
		return nil, err
	}
	from, to := domain.MonthRange(year, time.Month(month))
	out := []CategoryTotal{}
	err := sc.db.WithContext(ctx).Model(&domain.Transaction{}).
		Select("categories.name AS category, COALESCE(SUM(transactions.amount), 0) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.state = ? AND transactions.type = ?",
			sc.userID, domain.StateConfirmed, domain.TypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", from, to).
		Group("categories.name").
		Order("total DESC").Order("categories.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
