// Package order holds the order domain: an immutable snapshot of a cart
// at checkout plus delivery details and a status that advances as the
// kitchen works through it.
package order

import "time"

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusPreparing  Status = "PREPARING"
	StatusDelivering Status = "DELIVERING"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing,
		StatusDelivering, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Line is one order line, copied from a cart item at checkout.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Dough     string  `json:"dough,omitempty"`
	Crust     string  `json:"crust,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Note      string  `json:"note,omitempty"`
}

// Subtotal is the line's contribution to the order subtotal.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// Order is a placed order. The pricing fields are a snapshot of the
// cart summary at checkout time; later catalog or promo changes never
// reprice an order.
type Order struct {
	ID        string
	SessionID string

	CustomerName string
	Phone        string
	Address      string

	Items []Line

	Subtotal    float64
	DeliveryFee float64
	Discount    float64
	Tax         float64
	Total       float64
	PromoCode   string

	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
