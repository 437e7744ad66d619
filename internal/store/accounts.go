package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// AccountUpdate is a partial account update; nil fields are unchanged.
type AccountUpdate struct {
	Name           *string          `json:"name"`
	Type           *string          `json:"type"`
	InitialBalance *decimal.Decimal `json:"initial_balance"`
}

type accountTotal struct {
	AccountID uint
	Total     decimal.Decimal
}

func (sc *Scope) q(ctx context.Context) *gorm.DB {
	return sc.db.WithContext(ctx).Where("user_id = ?", sc.userID)
}

// CreateAccount stores a new account for the scope's user.
func (sc *Scope) CreateAccount(ctx context.Context, a *domain.Account) error {
	a.ID = 0
	a.UserID = sc.userID
	a.Name = strings.TrimSpace(a.Name)
	a.Type = strings.TrimSpace(a.Type)
	a.InitialBalance = domain.RoundMoney(a.InitialBalance)
	if err := domain.ValidateAccount(a); err != nil {
		return err
	}
	if err := sc.db.WithContext(ctx).Create(a).Error; err != nil {
		return err
	}
	a.Balance = a.InitialBalance
	return nil
}

// ListAccounts returns the user's accounts with their derived balances.
func (sc *Scope) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := sc.q(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}
	incoming, err := sc.totalsBy(ctx, "destination_account_id")
	if err != nil {
		return nil, err
	}
	outgoing, err := sc.totalsBy(ctx, "origin_account_id")
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		a := &accounts[i]
		a.Balance = domain.DeriveBalance(a.InitialBalance, incoming[a.ID], outgoing[a.ID])
	}
	return accounts, nil
}

// totalsBy sums confirmed amounts grouped by one of the account columns.
func (sc *Scope) totalsBy(ctx context.Context, column string) (map[uint]decimal.Decimal, error) {
	var rows []accountTotal
	err := sc.q(ctx).Model(&domain.Transaction{}).
		Select(column+" AS account_id, COALESCE(SUM(amount), 0) AS total").
		Where("state = ? AND "+column+" IS NOT NULL", domain.StateConfirmed).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]decimal.Decimal, len(rows))
	for _, r := range rows {
		out[r.AccountID] = r.Total
	}
	return out, nil
}

func (sc *Scope) findAccount(ctx context.Context, id uint) (*domain.Account, error) {
	var a domain.Account
	if err := sc.q(ctx).First(&a, id).Error; err != nil {
		return nil, notFound(err, "account", id)
	}
	return &a, nil
}

// GetAccount loads one account with its derived balance.
func (sc *Scope) GetAccount(ctx context.Context, id uint) (*domain.Account, error) {
	a, err := sc.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Balance, err = sc.balanceOf(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// AccountBalance is the derived current balance:
// initial + confirmed incoming - confirmed outgoing.
func (sc *Scope) AccountBalance(ctx context.Context, id uint) (decimal.Decimal, error) {
	a, err := sc.findAccount(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return sc.balanceOf(ctx, a)
}

func (sc *Scope) balanceOf(ctx context.Context, a *domain.Account) (decimal.Decimal, error) {
	incoming, err := sc.sumConfirmed(ctx, "destination_account_id = ?", a.ID)
	if err != nil {
		return decimal.Zero, err
	}
	outgoing, err := sc.sumConfirmed(ctx, "origin_account_id = ?", a.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.DeriveBalance(a.InitialBalance, incoming, outgoing), nil
}

func (sc *Scope) sumConfirmed(ctx context.Context, where string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := sc.q(ctx).Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("state = ?", domain.StateConfirmed).
		Where(where, args...).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

// UpdateAccount applies a partial update.
func (sc *Scope) UpdateAccount(ctx context.Context, id uint, upd AccountUpdate) (*domain.Account, error) {
	a, err := sc.findAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		a.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Type != nil {
		a.Type = strings.TrimSpace(*upd.Type)
	}
	if upd.InitialBalance != nil {
		a.InitialBalance = domain.RoundMoney(*upd.InitialBalance)
	}
	if err := domain.ValidateAccount(a); err != nil {
		return nil, err
	}
	if err := sc.q(ctx).Model(a).Select("name", "type", "initial_balance").Updates(a).Error; err != nil {
		return nil, err
	}
	return sc.GetAccount(ctx, id)
}

// DeleteAccount removes an account. Transactions keep their rows with the
// account reference cleared.
func (sc *Scope) DeleteAccount(ctx context.Context, id uint) error {
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, sc.userID, &domain.Account{}, &id, "account"); err != nil {
			return err
		}
		for _, column := range []string{"origin_account_id", "destination_account_id"} {
			if err := tx.Model(&domain.Transaction{}).
				Where("user_id = ? AND "+column+" = ?", sc.userID, id).
				Update(column, nil).Error; err != nil {
				return err
			}
		}
		return tx.Where("user_id = ?", sc.userID).Delete(&domain.Account{}, id).Error
	})
}
