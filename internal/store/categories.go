package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// CategoryUpdate is a partial category update.
type CategoryUpdate struct {
	Name *string                 `json:"name"`
	Type *domain.TransactionType `json:"type"`
}

// CreateCategory stores a new income or expense category.
func (sc *Scope) CreateCategory(ctx context.Context, c *domain.Category) error {
	c.ID = 0
	c.UserID = sc.userID
	c.Name = strings.TrimSpace(c.Name)
	if err := domain.ValidateCategory(c); err != nil {
		return err
	}
	return sc.db.WithContext(ctx).Create(c).Error
}

// ListCategories returns the user's categories, optionally of one type.
func (sc *Scope) ListCategories(ctx context.Context, typ domain.TransactionType) ([]domain.Category, error) {
	q := sc.q(ctx).Order("name").Order("id")
	if typ != "" {
		if !typ.IsFlow() {
			return nil, &domain.ValidationError{Field: "type", Reason: "must be income or expense"}
		}
		q = q.Where("type = ?", typ)
	}
	var out []domain.Category
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetCategory loads one category.
func (sc *Scope) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	if err := sc.q(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, "category", id)
	}
	return &c, nil
}

// UpdateCategory applies a partial update.
func (sc *Scope) UpdateCategory(ctx context.Context, id uint, upd CategoryUpdate) (*domain.Category, error) {
	c, err := sc.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		c.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Type != nil {
		c.Type = *upd.Type
	}
	if err := domain.ValidateCategory(c); err != nil {
		return nil, err
	}
	if err := sc.q(ctx).Model(c).Select("name", "type").Updates(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCategory removes a category and clears it from transactions and rules.
func (sc *Scope) DeleteCategory(ctx context.Context, id uint) error {
	return sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := owned(tx, sc.userID, &domain.Category{}, &id, "category"); err != nil {
			return err
		}
		for _, model := range []any{&domain.Transaction{}, &domain.Rule{}} {
			if err := tx.Model(model).
				Where("user_id = ? AND category_id = ?", sc.userID, id).
				Update("category_id", nil).Error; err != nil {
				return fmt.Errorf("detach category: %w", err)
			}
		}
		return tx.Where("user_id = ?", sc.userID).Delete(&domain.Category{}, id).Error
	})
}
