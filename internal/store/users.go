package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hernanagudelodev/proyecto-presupuesto/internal/domain"
	"github.com/hernanagudelodev/proyecto-presupuesto/internal/utils"
)

// AdminUserUpdate carries the fields a superuser may change. Nil fields
// are left alone.
type AdminUserUpdate struct {
	DisplayName *string `json:"display_name"`
	IsActive    *bool   `json:"is_active"`
	IsVerified  *bool   `json:"is_verified"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if at := strings.Index(email, "@"); at < 1 || at == len(email)-1 {
		return &domain.ValidationError{Field: "email", Reason: "must be a valid address"}
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	// bcrypt ignores input past 72 bytes
	if len(password) < 8 || len(password) > 72 {
		return &domain.ValidationError{Field: "password", Reason: "must be 8-72 characters"}
	}
	return nil
}

// CreateUser registers an active, unverified user.
func (s *Store) CreateUser(ctx context.Context, email, password, displayName string) (*domain.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
		IsActive:     true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: email %s already registered", domain.ErrConflict, email)
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks credentials and returns the active user.
func (s *Store) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user is inactive", domain.ErrUnauthorized)
	}
	return &user, nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// UpdateProfile changes the self-service fields of a user.
func (s *Store) UpdateProfile(ctx context.Context, id uint, displayName, email *string) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email != nil {
			addr := normalizeEmail(*email)
			if at := strings.Index(addr, "@"); at < 1 || at == len(addr)-1 {
				return &domain.ValidationError{Field: "email", Reason: "must be a valid address"}
			}
			var count int64
			if err := tx.Model(&domain.User{}).Where("email = ? AND id <> ?", addr, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: email %s already registered", domain.ErrConflict, addr)
			}
			user.Email = addr
		}
		if displayName != nil {
			user.DisplayName = strings.TrimSpace(*displayName)
		}
		return tx.Model(user).Select("email", "display_name").Updates(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *Store) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if !utils.VerifyPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password does not match", domain.ErrUnauthorized)
	}
	if err := validatePassword(next); err != nil {
		return err
	}
	hash, err := utils.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error
}

// ListUsers returns one page of users ordered by id, plus the total count.
func (s *Store) ListUsers(ctx context.Context, page Page) ([]domain.User, int64, error) {
	page = page.Normalize()
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id").Offset(page.offset()).Limit(page.Size).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AdminUpdateUser applies a superuser override.
func (s *Store) AdminUpdateUser(ctx context.Context, id uint, upd AdminUserUpdate) (*domain.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	changes := map[string]any{}
	if upd.DisplayName != nil {
		changes["display_name"] = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.IsActive != nil {
		changes["is_active"] = *upd.IsActive
	}
	if upd.IsVerified != nil {
		changes["is_verified"] = *upd.IsVerified
	}
	if upd.IsSuperuser != nil {
		changes["is_superuser"] = *upd.IsSuperuser
	}
	if len(changes) > 0 {
		if err := s.db.WithContext(ctx).Model(user).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes a user together with every row the user owns.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&domain.Transaction{}, &domain.Rule{}, &domain.Category{}, &domain.Account{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d", domain.ErrNotFound, id)
		}
		return nil
	})
}
