package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
)

// ExpandLockKey names the lock that serializes expansion of one month.
func ExpandLockKey(userID uint, year, month int) string {
	return fmt.Sprintf("lock:expand:user:%d:%04d-%02d", userID, year, month)
}

// ExpandRules regenerates the planned transactions of the month from the
// user's rules. Planned rows left by earlier runs are removed first, so
// running it twice yields the same rows. Confirmed rows are never touched.
func (sc *Scope) ExpandRules(ctx context.Context, year, month int) ([]domain.Transaction, error) {
	if err := domain.ValidPeriod(month); err != nil {
		return nil, err
	}
	unlock, err := sc.locker.Lock(ctx, ExpandLockKey(sc.userID, year, month))
	if err != nil {
		return nil, fmt.Errorf("acquire expansion lock: %w", err)
	}
	defer unlock()

	from, to := domain.MonthRange(year, time.Month(month))
	generated := []domain.Transaction{}
	err = sc.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rules []domain.Rule
		if err := tx.Where("user_id = ?", sc.userID).Order("id").Find(&rules).Error; err != nil {
			return err
		}
		if len(rules) == 0 {
			return nil
		}
		ids := make([]uint, 0, len(rules))
		for _, r := range rules {
			ids = append(ids, r.ID)
		}
		err := tx.Where("user_id = ? AND state = ? AND rule_id IN ? AND date >= ? AND date < ?",
			sc.userID, domain.StatePlanned, ids, from, to).
			Delete(&domain.Transaction{}).Error
		if err != nil {
			return fmt.Errorf("clear planned rows: %w", err)
		}

		for _, r := range rules {
			if !r.IsActive {
				continue
			}
			planned, err := r.Plan(year, month)
			if err != nil {
				return fmt.Errorf("rule %d: %w", r.ID, err)
			}
			generated = append(generated, planned...)
		}
		if len(generated) == 0 {
			return nil
		}
		return tx.Create(&generated).Error
	})
	if err != nil {
		return nil, err
	}
	return generated, nil
}
