package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthlyScheduleClampsToMonthEnd(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		day   int
		want  time.Time
	}{
		{2025, time.April, 31, day(2025, time.April, 30)},
		{2024, time.February, 31, day(2024, time.February, 29)},
		{2023, time.February, 30, day(2023, time.February, 28)},
		{2025, time.January, 31, day(2025, time.January, 31)},
		{2025, time.June, 15, day(2025, time.June, 15)},
	}
	for _, tc := range cases {
		got := MonthlySchedule{Day: tc.day}.Dates(tc.year, tc.month)
		require.Len(t, got, 1)
		assert.Equal(t, tc.want, got[0], "day %d in %s %d", tc.day, tc.month, tc.year)
	}
}

func TestWeeklyScheduleEnumeratesWeekdays(t *testing.T) {
	wednesday := WeekdayFromIndex(2)
	assert.Equal(t, time.Wednesday, wednesday)

	got := WeeklySchedule{Weekday: wednesday}.Dates(2025, time.October)
	assert.Equal(t, []time.Time{
		day(2025, time.October, 1),
		day(2025, time.October, 8),
		day(2025, time.October, 15),
		day(2025, time.October, 22),
		day(2025, time.October, 29),
	}, got)

	got = WeeklySchedule{Weekday: wednesday}.Dates(2026, time.March)
	assert.Len(t, got, 4)
	for _, d := range got {
		assert.Equal(t, time.Wednesday, d.Weekday())
		assert.Equal(t, time.March, d.Month())
	}
}

func TestWeekdayFromIndex(t *testing.T) {
	assert.Equal(t, time.Monday, WeekdayFromIndex(0))
	assert.Equal(t, time.Saturday, WeekdayFromIndex(5))
	assert.Equal(t, time.Sunday, WeekdayFromIndex(6))
}

func TestYearlyScheduleOnlyMatchingMonth(t *testing.T) {
	s := YearlySchedule{Month: time.February, Day: 30}
	assert.Empty(t, s.Dates(2025, time.March))
	assert.Equal(t, []time.Time{day(2025, time.February, 28)}, s.Dates(2025, time.February))
}

func TestRulePlanCopiesTemplate(t *testing.T) {
	cat := uint(7)
	r := Rule{
		ID:          3,
		UserID:      9,
		Description: "Rent",
		Amount:      decimal.RequireFromString("850.00"),
		Type:        TypeExpense,
		Frequency:   FrequencyMonthly,
		Day:         31,
		CategoryID:  &cat,
		IsActive:    true,
	}
	txs, err := r.Plan(2025, 4)
	require.NoError(t, err)
	require.Len(t, txs, 1)

	tx := txs[0]
	assert.Equal(t, day(2025, time.April, 30), tx.Date)
	assert.Equal(t, StatePlanned, tx.State)
	assert.Equal(t, TypeExpense, tx.Type)
	assert.Equal(t, "Rent", tx.Description)
	assert.Equal(t, uint(9), tx.UserID)
	assert.True(t, r.Amount.Equal(tx.Amount))
	require.NotNil(t, tx.RuleID)
	assert.Equal(t, uint(3), *tx.RuleID)
	require.NotNil(t, tx.CategoryID)
	assert.Equal(t, cat, *tx.CategoryID)
}

func TestRulePlanRejectsBadInput(t *testing.T) {
	r := Rule{Description: "x", Type: TypeIncome, Frequency: FrequencyMonthly, Day: 1}
	_, err := r.Plan(2025, 13)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	r.Frequency = FrequencyYearly
	_, err = r.Plan(2025, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February))
	assert.Equal(t, 28, DaysIn(2100, time.February))
	assert.Equal(t, 31, DaysIn(2025, time.December))
}
