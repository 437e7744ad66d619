package store

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// TransactionFilter narrows ListTransactions. Zero fields do not filter.
// From and To are inclusive dates.
type TransactionFilter struct {
	State     domain.TransactionState
	Type      domain.TransactionType
	AccountID uint
	From      time.Time
	To        time.Time
	Page      Page
}

// TransactionUpdate is a partial transaction update. Nullable references
// use Patch so a request can clear them.
type TransactionUpdate struct {
	Date                 *time.Time               `json:"-"`
	Amount               *decimal.Decimal         `json:"amount"`
	Type                 *domain.TransactionType  `json:"type"`
	Description          *string                  `json:"description"`
	State                *domain.TransactionState `json:"state"`
	OriginAccountID      Patch[*uint]             `json:"origin_account_id"`
	DestinationAccountID Patch[*uint]             `json:"destination_account_id"`
	CategoryID           Patch[*uint]             `json:"category_id"`
}

var transactionColumns = []string{
	"date", "amount", "type", "description", "state",
	"origin_account_id", "destination_account_id", "category_id",
}

// checkRefs verifies that every referenced row belongs to the user.
func (sc *Scope) checkRefs(tx *gorm.DB, t *domain.Transaction) error {
	if err := owned(tx, sc.userID, &domain.Account{}, t.OriginAccountID, "account"); err != nil {
		return err
	}
	if err := owned(tx, sc.userID, &domain.Account{}, t.DestinationAccountID, "account"); err != nil {
		return err
	}
	return owned(tx, sc.userID, &domain.Category{}, t.CategoryID, "category")
}

func prepareTransaction(t *domain.Transaction) {
	if t.State == "" {
		t.State = domain.StateConfirmed
	}
	t.Date = domain.DateOf(t.Date)
	t.Amount = domain.RoundMoney(t.Amount)
	t.Description = strings.TrimSpace(t.Description)
}

// CreateTransaction validates and stores a manual transaction. The state
// defaults to confirmed.
func (sc *Scope) CreateTransaction(ctx context.Context, t *domain.Transaction) error {
	t.ID = 0
	t.UserID = sc.userID
	t.RuleID = nil
	prepareTransaction(t)
	if err := domain.ValidateTransaction(t); err != nil {
		return err
	}
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sc.checkRefs(tx, t); err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

func (sc *Scope) filtered(ctx context.Context, f TransactionFilter) *gorm.DB {
	q := sc.q(ctx).Model(&domain.Transaction{})
	if f.State != "" {
		q = q.Where("state = ?", f.State)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.AccountID != 0 {
		q = q.Where("(origin_account_id = ? OR destination_account_id = ?)", f.AccountID, f.AccountID)
	}
	if !f.From.IsZero() {
		q = q.Where("date >= ?", domain.DateOf(f.From))
	}
	if !f.To.IsZero() {
		q = q.Where("date <= ?", domain.DateOf(f.To))
	}
	return q
}

// ListTransactions returns one page of transactions, newest first, and
// the number of rows matching the filter.
func (sc *Scope) ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, int64, error) {
	page := f.Page.Normalize()
	q := sc.filtered(ctx, f)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Transaction
	err := q.Order("date DESC").Order("id DESC").
		Offset(page.offset()).Limit(page.Size).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// AllTransactions returns every transaction matching the filter, oldest
// first. Page is ignored.
func (sc *Scope) AllTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	if err := sc.filtered(ctx, f).Order("date").Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetTransaction loads one transaction.
func (sc *Scope) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	if err := sc.q(ctx).First(&t, id).Error; err != nil {
		return nil, notFound(err, "transaction", id)
	}
	return &t, nil
}

// UpdateTransaction applies a partial update. The merged row must pass
// the same validation as a new one.
func (sc *Scope) UpdateTransaction(ctx context.Context, id uint, upd TransactionUpdate) (*domain.Transaction, error) {
	t, err := sc.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Type != nil {
		t.Type = *upd.Type
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.State != nil {
		t.State = *upd.State
	}
	if upd.OriginAccountID.Set {
		t.OriginAccountID = upd.OriginAccountID.Value
	}
	if upd.DestinationAccountID.Set {
		t.DestinationAccountID = upd.DestinationAccountID.Value
	}
	if upd.CategoryID.Set {
		t.CategoryID = upd.CategoryID.Value
	}
	if err := sc.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ConfirmTransaction turns a planned transaction into a confirmed one.
// The full confirmed-state validation applies.
func (sc *Scope) ConfirmTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	t, err := sc.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	t.State = domain.StateConfirmed
	if err := sc.save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (sc *Scope) save(ctx context.Context, t *domain.Transaction) error {
	prepareTransaction(t)
	if err := domain.ValidateTransaction(t); err != nil {
		return err
	}
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := sc.checkRefs(tx, t); err != nil {
			return err
		}
		return tx.Model(t).Where("user_id = ?", sc.userID).Select(transactionColumns).Updates(t).Error
	})
}

// DeleteTransaction removes one transaction.
func (sc *Scope) DeleteTransaction(ctx context.Context, id uint) error {
	res := sc.q(ctx).Delete(&domain.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "transaction", id)
	}
	return nil
}
