// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/arianshop/backend/internal/config"
	"github.com/arianshop/backend/internal/domain/cart"
	"github.com/arianshop/backend/internal/domain/upload"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles order business logic
type Service struct {
	db            *gorm.DB
	config        *config.Config
	cartService   *cart.Service
	uploadService *upload.Service
	log           *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, uploadService *upload.Service, log *logrus.Logger) *Service {
	return &Service{
		db:            db,
		config:        cfg,
		cartService:   cartService,
		uploadService: uploadService,
		log:           log,
	}
}

// ItemRequest is one submitted order line. Price comes from the client and
// is trusted as-is when computing the order amount.
type ItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Price     int64  `json:"price"`
	Image     string `json:"image"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents order creation data
type PlaceOrderRequest struct {
	Items   []ItemRequest `json:"items" binding:"required"`
	Address Address       `json:"address" binding:"required"`
}

// Validate rejects structurally incomplete requests before anything is
// persisted
func (r *PlaceOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for _, item := range r.Items {
		if item.Color == "" {
			return cart.ErrColorRequired
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item quantity must be positive")
		}
	}
	return r.Address.Validate()
}

// PlaceOrder creates an order snapshot from the submitted items. COD orders
// complete immediately and the user's server cart is cleared; Stripe orders
// wait for payment confirmation before the cart is touched.
func (s *Service) PlaceOrder(ctx context.Context, userID uint, req *PlaceOrderRequest, method PaymentMethod) (*Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]Item, len(req.Items))
	for i, item := range req.Items {
		items[i] = Item{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Image:     item.Image,
			Color:     item.Color,
			Quantity:  item.Quantity,
		}
	}

	newOrder := Order{
		UserID:        userID,
		Amount:        ComputeAmount(items, s.config.Checkout.DeliveryFee),
		Address:       req.Address,
		Status:        StatusOrderPlaced,
		PaymentMethod: method,
		Payment:       false,
		Items:         items,
	}

	if err := s.db.Create(&newOrder).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if method == PaymentMethodCOD {
		// Best effort; the order stands even if the cart clear fails
		if err := s.cartService.ClearCart(ctx, userID, ""); err != nil {
			s.log.WithFields(logrus.Fields{
				"user_id":  userID,
				"order_id": newOrder.ID,
			}).WithError(err).Warn("Failed to clear cart after order placement")
		}
	}

	return &newOrder, nil
}

// ConfirmPayment finalizes a gateway payment. Confirming an already-paid
// order is a no-op success; a failed checkout deletes the unpaid order.
func (s *Service) ConfirmPayment(ctx context.Context, orderID, userID uint, success bool) error {
	var o Order
	if err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("order not found")
		}
		return fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !success {
		if o.Payment {
			return fmt.Errorf("cannot discard an already paid order")
		}
		if err := s.db.Select("Items").Delete(&o).Error; err != nil {
			return fmt.Errorf("failed to remove unpaid order: %w", err)
		}
		return nil
	}

	if o.Payment {
		return nil // already confirmed
	}

	if err := s.db.Model(&o).Update("payment", true).Error; err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	if err := s.cartService.ClearCart(ctx, userID, ""); err != nil {
		s.log.WithFields(logrus.Fields{
			"user_id":  userID,
			"order_id": orderID,
		}).WithError(err).Warn("Failed to clear cart after payment confirmation")
	}

	return nil
}

// UpdateStatus transitions an order. Reaching Delivered requires a delivery
// evidence image: the image is stored first and the status committed only
// after the store succeeds, so a storage failure leaves the order untouched.
func (s *Service) UpdateStatus(orderID uint, newStatus Status, evidence *multipart.FileHeader) error {
	if !IsValidStatus(newStatus) {
		return fmt.Errorf("unknown order status: %s", newStatus)
	}

	var o Order
	if err := s.db.First(&o, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("order not found")
		}
		return fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !CanTransition(o.Status, newStatus) {
		return fmt.Errorf("invalid status transition from %s to %s", o.Status, newStatus)
	}

	updates := map[string]interface{}{"status": newStatus}

	if newStatus == StatusDelivered {
		if evidence == nil {
			return fmt.Errorf("delivery evidence image is required to mark an order as delivered")
		}
		evidenceURL, err := s.uploadService.StoreImage(evidence, "evidence")
		if err != nil {
			return fmt.Errorf("failed to store delivery evidence: %w", err)
		}
		updates["delivery_evidence"] = evidenceURL
	}

	if err := s.db.Model(&o).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

// Delete removes an order permanently
func (s *Service) Delete(orderID uint) error {
	result := s.db.Select("Items").Delete(&Order{ID: orderID})
	if result.Error != nil {
		return fmt.Errorf("failed to delete order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("order not found")
	}
	return nil
}

// ListAll returns every order, newest first, for the admin panel
func (s *Service) ListAll() ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// ListForUser returns the requesting user's orders flattened to one row per
// line item, newest order first
func (s *Service) ListForUser(userID uint) ([]UserOrderRow, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user orders: %w", err)
	}
	return FlattenForUser(orders), nil
}

// Get retrieves a single order with its items
func (s *Service) Get(orderID uint) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").First(&o, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}
