package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/db"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func newTestStore(t *testing.T) (*Store, *gorm.DB) {
	gdb := newTestDB(t)
	return New(gdb, nil), gdb
}

var userSeq int

func seedUser(t *testing.T, gdb *gorm.DB) uint {
	t.Helper()
	userSeq++
	u := domain.User{Email: fmt.Sprintf("user%d@example.com", userSeq), PasswordHash: "x", IsActive: true}
	require.NoError(t, gdb.Create(&u).Error)
	return u.ID
}

func seedAccount(t *testing.T, sc *Scope, name string, initial int64) *domain.Account {
	t.Helper()
	a := &domain.Account{Name: name, Type: "bank", InitialBalance: decimal.NewFromInt(initial)}
	require.NoError(t, sc.CreateAccount(context.Background(), a))
	return a
}

func seedCategory(t *testing.T, sc *Scope, name string, typ domain.TransactionType) *domain.Category {
	t.Helper()
	c := &domain.Category{Name: name, Type: typ}
	require.NoError(t, sc.CreateCategory(context.Background(), c))
	return c
}

func seedTx(t *testing.T, sc *Scope, tx domain.Transaction) *domain.Transaction {
	t.Helper()
	require.NoError(t, sc.CreateTransaction(context.Background(), &tx))
	return &tx
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ref(id uint) *uint { return &id }

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestPageNormalize(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: 20}, Page{}.Normalize())
	assert.Equal(t, Page{Number: 3, Size: 20}, Page{Number: 3, Size: 500}.Normalize())
	assert.Equal(t, Page{Number: 2, Size: 50}, Page{Number: 2, Size: 50}.Normalize())
	assert.Equal(t, 50, Page{Number: 2, Size: 50}.offset())
}

func TestMonthExprPerDialect(t *testing.T) {
	gdb := newTestDB(t)
	assert.Contains(t, monthExpr(gdb), "strftime")
}
