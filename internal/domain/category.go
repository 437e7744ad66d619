package domain

// Category Model
type Category struct {
	ID     uint            `gorm:"primaryKey" json:"id"`          // Primary key
	UserID uint            `gorm:"index;not null" json:"user_id"` // Owning user
	Name   string          `gorm:"size:64;not null" json:"name"`  // Category name
	Type   TransactionType `gorm:"size:16;not null" json:"type"`  // income or expense
}
