package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique, lower-cased email
	PasswordHash string    `gorm:"size:255;not null" json:"-"`                 // Bcrypt hash, never serialized
	DisplayName  string    `gorm:"size:128" json:"display_name"`               // Name shown in the UI
	IsActive     bool      `gorm:"not null" json:"is_active"`                  // Inactive users cannot log in
	IsVerified   bool      `gorm:"not null" json:"is_verified"`                // Email verified flag
	IsSuperuser  bool      `gorm:"not null" json:"is_superuser"`               // Grants access to /admin
	CreatedAt    time.Time `json:"created_at"`                                 // Registration time
}
