// internal/domain/product/entity.go
package product

import (
	"time"
)

// Product represents a catalog entry. Price is an integer unit; display
// scaling is a storefront concern. Orders snapshot product fields at
// creation time, so deleting a product never breaks existing orders.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Category    string    `gorm:"size:100;index" json:"category"`
	Colors      []string  `gorm:"serializer:json" json:"colors"`
	Images      []string  `gorm:"serializer:json" json:"image"`
	Popular     bool      `gorm:"default:false" json:"popular"`
	CreatedAt   time.Time `json:"date"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}

// HasColor reports whether the product offers the given color variant
func (p *Product) HasColor(color string) bool {
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// MainImage returns the first image reference, or empty when there is none
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
