// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"
)

// Status represents the order status. The wire strings match what the
// storefront and admin panel display.
type Status string

const (
	StatusOrderPlaced    Status = "Order Placed"
	StatusPacking        Status = "Packing"
	StatusShipped        Status = "Shipped"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
)

// PaymentMethod tags how an order is paid
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodStripe PaymentMethod = "Stripe"
)

// statusRank orders the linear status progression
var statusRank = map[Status]int{
	StatusOrderPlaced:    0,
	StatusPacking:        1,
	StatusShipped:        2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s Status) bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransition reports whether moving from one status to another is
// allowed. The progression is forward-only; skipping ahead is permitted,
// moving backward is not.
func CanTransition(from, to Status) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// Order is an immutable snapshot taken at checkout. Only the status,
// payment flag and delivery evidence change afterwards.
type Order struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	UserID           uint          `gorm:"not null;index" json:"user_id"`
	Amount           int64         `gorm:"not null" json:"amount"`
	Address          Address       `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Status           Status        `gorm:"not null;default:'Order Placed'" json:"status"`
	PaymentMethod    PaymentMethod `gorm:"not null;size:20" json:"payment_method"`
	Payment          bool          `gorm:"not null;default:false" json:"payment"`
	DeliveryEvidence string        `gorm:"size:500" json:"delivery_evidence"`
	CreatedAt        time.Time     `json:"date"`
	UpdatedAt        time.Time     `json:"-"`

	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item is a denormalized order line: product fields are copied at order
// creation so later catalog changes never touch placed orders.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	Image     string    `gorm:"size:500" json:"image"`
	Color     string    `gorm:"not null;size:50" json:"color"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"-"`
}

// Address is the structured shipping address embedded in an order
type Address struct {
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:255" json:"email"`
	Street    string `gorm:"size:255" json:"street"`
	City      string `gorm:"size:100" json:"city"`
	State     string `gorm:"size:100" json:"state"`
	Country   string `gorm:"size:100" json:"country"`
	Zipcode   string `gorm:"size:20" json:"zipcode"`
	Phone     string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// Validate checks the address is structurally complete
func (a *Address) Validate() error {
	required := []struct {
		value string
		field string
	}{
		{a.FirstName, "firstName"},
		{a.LastName, "lastName"},
		{a.Street, "street"},
		{a.City, "city"},
		{a.State, "state"},
		{a.Country, "country"},
		{a.Zipcode, "zipcode"},
		{a.Phone, "phone"},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("address field %s is required", r.field)
		}
	}
	return nil
}

// LineTotal returns the subtotal for one order line
func (i *Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// ComputeAmount totals the submitted line items plus the flat delivery fee.
// Prices are taken from the submitted items, not re-derived from the
// catalog; the client is the trusted source for them.
func ComputeAmount(items []Item, deliveryFee int64) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total + deliveryFee
}

// UserOrderRow is one row of the customer order view: orders are flattened
// to one row per line item, annotated with the parent order's state.
type UserOrderRow struct {
	OrderID          uint          `json:"order_id"`
	ProductID        uint          `json:"product_id"`
	Name             string        `json:"name"`
	Price            int64         `json:"price"`
	Image            string        `json:"image"`
	Color            string        `json:"color"`
	Quantity         int           `json:"quantity"`
	Status           Status        `json:"status"`
	Payment          bool          `json:"payment"`
	PaymentMethod    PaymentMethod `json:"payment_method"`
	DeliveryEvidence string        `json:"delivery_evidence"`
	Date             time.Time     `json:"date"`
}

// FlattenForUser turns orders (newest first) into per-line-item display rows
func FlattenForUser(orders []Order) []UserOrderRow {
	rows := make([]UserOrderRow, 0, len(orders))
	for _, o := range orders {
		for _, item := range o.Items {
			rows = append(rows, UserOrderRow{
				OrderID:          o.ID,
				ProductID:        item.ProductID,
				Name:             item.Name,
				Price:            item.Price,
				Image:            item.Image,
				Color:            item.Color,
				Quantity:         item.Quantity,
				Status:           o.Status,
				Payment:          o.Payment,
				PaymentMethod:    o.PaymentMethod,
				DeliveryEvidence: o.DeliveryEvidence,
				Date:             o.CreatedAt,
			})
		}
	}
	return rows
}
