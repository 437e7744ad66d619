package store

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// RuleUpdate is a partial rule update. Month and CategoryID may be set
// to null explicitly.
type RuleUpdate struct {
	Description *string                 `json:"description"`
	Amount      *decimal.Decimal        `json:"amount"`
	Type        *domain.TransactionType `json:"type"`
	Frequency   *domain.Frequency       `json:"frequency"`
	Day         *int                    `json:"day"`
	Month       Patch[*int]             `json:"month"`
	CategoryID  Patch[*uint]            `json:"category_id"`
	IsActive    *bool                   `json:"is_active"`
}

var ruleColumns = []string{"description", "amount", "type", "frequency", "day", "month", "category_id", "is_active"}

// CreateRule validates and stores a recurring rule.
func (sc *Scope) CreateRule(ctx context.Context, r *domain.Rule) error {
	r.ID = 0
	r.UserID = sc.userID
	r.Description = strings.TrimSpace(r.Description)
	r.Amount = domain.RoundMoney(r.Amount)
	if err := domain.ValidateRule(r); err != nil {
		return err
	}
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, sc.userID, &domain.Category{}, r.CategoryID, "category"); err != nil {
			return err
		}
		return tx.Create(r).Error
	})
}

// ListRules returns all rules of the user.
func (sc *Scope) ListRules(ctx context.Context) ([]domain.Rule, error) {
	var out []domain.Rule
	if err := sc.q(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetRule loads one rule.
func (sc *Scope) GetRule(ctx context.Context, id uint) (*domain.Rule, error) {
	var r domain.Rule
	if err := sc.q(ctx).First(&r, id).Error; err != nil {
		return nil, notFound(err, "rule", id)
	}
	return &r, nil
}

// UpdateRule applies a partial update and revalidates the result.
func (sc *Scope) UpdateRule(ctx context.Context, id uint, upd RuleUpdate) (*domain.Rule, error) {
	r, err := sc.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Description != nil {
		r.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Amount != nil {
		r.Amount = domain.RoundMoney(*upd.Amount)
	}
	if upd.Type != nil {
		r.Type = *upd.Type
	}
	if upd.Frequency != nil {
		r.Frequency = *upd.Frequency
	}
	if upd.Day != nil {
		r.Day = *upd.Day
	}
	if upd.Month.Set {
		r.Month = upd.Month.Value
	}
	if upd.CategoryID.Set {
		r.CategoryID = upd.CategoryID.Value
	}
	if upd.IsActive != nil {
		r.IsActive = *upd.IsActive
	}
	if err := domain.ValidateRule(r); err != nil {
		return nil, err
	}
	err = sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, sc.userID, &domain.Category{}, r.CategoryID, "category"); err != nil {
			return err
		}
		return tx.Model(r).Where("user_id = ?", sc.userID).Select(ruleColumns).Updates(r).Error
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteRule removes a rule. Transactions it generated stay, unlinked.
func (sc *Scope) DeleteRule(ctx context.Context, id uint) error {
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, sc.userID, &domain.Rule{}, &id, "rule"); err != nil {
			return err
		}
		if err := tx.Model(&domain.Transaction{}).
			Where("user_id = ? AND rule_id = ?", sc.userID, id).
			Update("rule_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", sc.userID).Delete(&domain.Rule{}, id).Error
	})
}
