// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arianshop/backend/internal/config"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	guestCartTTL = 24 * time.Hour
	mergeLockTTL = 30 * time.Second
	guestCartKey = "cart:session:%s"
	mergeLockKey = "cart:merge-lock:%s"
)

// Service handles cart business logic. Authenticated carts live in
// cart_items rows; guest carts live in Redis keyed by session id.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// GetCart returns the cart view for a user or guest session
func (s *Service) GetCart(ctx context.Context, userID uint, sessionID string) (Data, error) {
	if userID != 0 {
		return s.getUserCart(userID)
	}
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sessionCart.Items, nil
}

// AddItem adds delta units of (productID, color) to the cart. Quantities for
// an existing (product, color) line are summed.
func (s *Service) AddItem(ctx context.Context, userID uint, sessionID string, productID uint, color string, delta int) error {
	if color == "" {
		return ErrColorRequired
	}
	if delta <= 0 {
		delta = 1
	}

	if userID != 0 {
		return s.addToUserCart(userID, productID, color, delta)
	}
	return s.mutateGuestCart(ctx, sessionID, func(d Data) error {
		return d.Add(productID, color, delta)
	})
}

// SetQuantity overwrites the quantity of (productID, color). Zero removes
// the line.
func (s *Service) SetQuantity(ctx context.Context, userID uint, sessionID string, productID uint, color string, quantity int) error {
	if color == "" {
		return ErrColorRequired
	}
	if quantity < 0 {
		quantity = 0
	}

	if userID != 0 {
		if quantity == 0 {
			return s.db.Where("user_id = ? AND product_id = ? AND color = ?",
				userID, productID, color).Delete(&CartItem{}).Error
		}
		item := CartItem{
			UserID:    userID,
			ProductID: productID,
			Color:     color,
			Quantity:  quantity,
		}
		// Last write wins on the (user, product, color) line
		return s.db.Where("user_id = ? AND product_id = ? AND color = ?",
			userID, productID, color).
			Assign(map[string]interface{}{"quantity": quantity}).
			FirstOrCreate(&item).Error
	}

	return s.mutateGuestCart(ctx, sessionID, func(d Data) error {
		return d.Set(productID, color, quantity)
	})
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, userID uint, sessionID string) error {
	if userID != 0 {
		return s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
	}
	return s.redisClient.Del(ctx, fmt.Sprintf(guestCartKey, sessionID)).Err()
}

// MergeGuestCart merges the guest session cart into the user's server cart
// after login. Every (product, color, qty>0) triple is added additively so
// items already in the user's cart from another session are never clobbered.
// The guest cart is deleted afterwards and the merged server cart returned.
// A per-session lock makes concurrent merge triggers no-ops.
func (s *Service) MergeGuestCart(ctx context.Context, userID uint, sessionID string) (Data, error) {
	if sessionID == "" {
		return s.getUserCart(userID)
	}

	lockKey := fmt.Sprintf(mergeLockKey, sessionID)
	locked, err := s.redisClient.SetNX(ctx, lockKey, userID, mergeLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire merge lock: %w", err)
	}
	if !locked {
		// A merge for this session is already in flight
		return s.getUserCart(userID)
	}
	defer s.redisClient.Del(ctx, lockKey)

	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for productID, variants := range sessionCart.Items {
		for color, quantity := range variants {
			if quantity <= 0 || color == "" {
				continue
			}
			if err := s.addToUserCart(userID, productID, color, quantity); err != nil {
				return nil, fmt.Errorf("failed to merge cart item %d/%s: %w", productID, color, err)
			}
		}
	}

	if err := s.redisClient.Del(ctx, fmt.Sprintf(guestCartKey, sessionID)).Err(); err != nil {
		return nil, fmt.Errorf("failed to clear guest cart: %w", err)
	}

	return s.getUserCart(userID)
}

// Private helpers

func (s *Service) getUserCart(userID uint) (Data, error) {
	var items []CartItem
	if err := s.db.Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
	}

	data := make(Data)
	for _, item := range items {
		if item.Quantity > 0 {
			_ = data.Set(item.ProductID, item.Color, item.Quantity)
		}
	}
	return data, nil
}

func (s *Service) addToUserCart(userID, productID uint, color string, delta int) error {
	var existing CartItem
	result := s.db.Where("user_id = ? AND product_id = ? AND color = ?",
		userID, productID, color).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		item := CartItem{
			UserID:    userID,
			ProductID: productID,
			Color:     color,
			Quantity:  delta,
		}
		return s.db.Create(&item).Error
	} else if result.Error != nil {
		return result.Error
	}

	existing.Quantity += delta
	return s.db.Save(&existing).Error
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	key := fmt.Sprintf(guestCartKey, sessionID)
	payload, err := s.redisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     make(Data),
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(payload), &sessionCart); err != nil {
		return nil, err
	}
	if sessionCart.Items == nil {
		sessionCart.Items = make(Data)
	}
	return &sessionCart, nil
}

func (s *Service) mutateGuestCart(ctx context.Context, sessionID string, mutate func(Data) error) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	if err := mutate(sessionCart.Items); err != nil {
		return err
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(sessionCart)
	if err != nil {
		return err
	}

	key := fmt.Sprintf(guestCartKey, sessionID)
	return s.redisClient.Set(ctx, key, payload, guestCartTTL).Err()
}
