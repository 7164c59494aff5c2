// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem is one server-side cart line for an authenticated user,
// keyed by (user, product, color)
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_user_product_color,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_user_product_color,unique" json:"product_id"`
	Color     string    `gorm:"not null;size:50;index:idx_cart_user_product_color,unique" json:"color"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name for CartItem
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart is the guest cart stored in Redis as a JSON blob
type SessionCart struct {
	SessionID string    `json:"session_id"`
	Items     Data      `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
