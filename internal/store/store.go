// Package store is the only path from the HTTP layer to the database.
// Per-user data is reached exclusively through a Scope, and every query a
// Scope issues is filtered by its user id.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils"
)

// Store wraps the database handle and the expansion locker.
type Store struct {
	db     *gorm.DB
	locker utils.Locker
}

// New creates a Store. A nil locker falls back to an in-process one.
func New(db *gorm.DB, locker utils.Locker) *Store {
	if locker == nil {
		locker = utils.NewLocalLocker()
	}
	return &Store{db: db, locker: locker}
}

// ForUser returns the data scope of one authenticated user.
func (s *Store) ForUser(userID uint) *Scope {
	return &Scope{db: s.db, locker: s.locker, userID: userID}
}

// Scope gives access to the rows owned by a single user.
type Scope struct {
	db     *gorm.DB
	locker utils.Locker
	userID uint
}

// UserID returns the owner of the scope.
func (sc *Scope) UserID() uint { return sc.userID }

// Page is a 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Normalize applies the defaults: page 1, 20 rows, at most 100.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 || p.Size > 100 {
		p.Size = 20
	}
	return p
}

func (p Page) offset() int { return (p.Number - 1) * p.Size }

// owned reports ErrNotFound unless the row id of model belongs to userID.
// A nil id is accepted.
func owned(tx *gorm.DB, userID uint, model any, id *uint, what string) error {
	if id == nil {
		return nil
	}
	var n int64
	if err := tx.Model(model).Where("id = ? AND user_id = ?", *id, userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, *id)
	}
	return nil
}

// notFound translates gorm's missing-row error into the domain one.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", domain.ErrNotFound, what, id)
	}
	return err
}

// monthExpr extracts the month number of the transaction date in the
// dialect of the connected database.
func monthExpr(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "sqlite":
		return "CAST(strftime('%m', transactions.date) AS INTEGER)"
	case "postgres":
		return "CAST(EXTRACT(MONTH FROM transactions.date) AS INTEGER)"
	default:
		return "MONTH(transactions.date)"
	}
}
