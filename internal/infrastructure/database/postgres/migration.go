// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/arianshop/backend/internal/domain/cart"
	"github.com/arianshop/backend/internal/domain/order"
	"github.com/arianshop/backend/internal/domain/product"
	"github.com/arianshop/backend/internal/domain/subscriber"
	"github.com/arianshop/backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("Running database auto-migrations...")

	// Dependency order: base tables first
	models := []interface{}{
		&user.User{},
		&user.WishlistItem{},
		&product.Product{},
		&cart.CartItem{},
		&order.Order{},
		&order.Item{},
		&subscriber.Subscriber{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",
		"CREATE INDEX IF NOT EXISTS idx_products_popular ON products(popular)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",

		"CREATE INDEX IF NOT EXISTS idx_subscribers_active ON subscribers(is_active)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// SeedInitialData seeds a few catalog entries for development
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&product.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check product count: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding development catalog...")

	products := []product.Product{
		{
			Name:        "Classic Cotton Tee",
			Description: "Soft everyday t-shirt in heavyweight cotton.",
			Price:       25,
			Category:    "Clothing",
			Colors:      []string{"Black", "White", "Navy"},
			Images:      []string{"https://dummyimage.com/400x400/000/fff&text=Tee"},
			Popular:     true,
		},
		{
			Name:        "Canvas Tote Bag",
			Description: "Roomy tote with reinforced handles.",
			Price:       18,
			Category:    "Accessories",
			Colors:      []string{"Natural", "Olive"},
			Images:      []string{"https://dummyimage.com/400x400/ddd/333&text=Tote"},
			Popular:     false,
		},
		{
			Name:        "Trail Running Shoes",
			Description: "Grippy outsole, breathable mesh upper.",
			Price:       89,
			Category:    "Footwear",
			Colors:      []string{"Grey", "Orange"},
			Images:      []string{"https://dummyimage.com/400x400/999/fff&text=Shoes"},
			Popular:     true,
		},
	}

	for i := range products {
		products[i].CreatedAt = time.Now().UTC()
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %q: %w", products[i].Name, err)
		}
	}

	log.Printf("Seeded %d products", len(products))
	return nil
}
