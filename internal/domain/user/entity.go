// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"
)

// User represents the user entity. Password is empty for accounts created
// through Google login; such accounts authenticate by GoogleID only.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password  string    `gorm:"size:255" json:"-"` // Don't return in JSON
	Bio       string    `gorm:"type:text" json:"bio"`
	Phone     string    `gorm:"size:20" json:"phone"`
	Address   string    `gorm:"size:500" json:"address"`
	GoogleID  string    `gorm:"size:255;index" json:"-"`
	Avatar    string    `gorm:"size:500" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WishlistItem links a user to a saved product
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_wishlist_user_product,unique" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// TableName overrides the table name for WishlistItem
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// IsGoogleAccount reports whether the account was created via Google login
func (u *User) IsGoogleAccount() bool {
	return u.GoogleID != ""
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
