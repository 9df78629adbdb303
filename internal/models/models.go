package models

import "time"

// User is the persisted account record. Handlers convert it to a
// lightweight DTO for the client; PasswordHash never leaves the server.
type User struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Username     string    `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:320"`
	Phone        string    `gorm:"size:32"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// InviteCode is a single-use registration token. Used flips 0->1 exactly
// once; UsedBy/UsedAt record the account the code admitted.
type InviteCode struct {
	ID        string     `gorm:"primaryKey;type:text"`
	Code      string     `gorm:"uniqueIndex;size:64;not null"`
	Used      bool       `gorm:"not null;default:false"`
	UsedBy    *string    `gorm:"type:text"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (InviteCode) TableName() string { return "invite_codes" }

// Product is a catalog entry with exactly one unit of stock. IsAvailable
// flips true->false on the first successful purchase and never reverts.
type Product struct {
	ID          string `gorm:"primaryKey;type:text"`
	Name        string `gorm:"size:128;not null"`
	Price       int64  `gorm:"not null"` // minor currency units
	Description string `gorm:"type:text"`
	Category    string `gorm:"size:64"`
	Image       string `gorm:"size:255"`
	IsAvailable bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
}

func (Product) TableName() string { return "products" }

// Purchase is the append-only record of a winning purchase attempt.
type Purchase struct {
	ID        string    `gorm:"primaryKey;type:text"`
	UserID    string    `gorm:"index;type:text;not null"`
	ProductID string    `gorm:"index;type:text;not null"`
	CreatedAt time.Time
}

func (Purchase) TableName() string { return "purchases" }
