package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

// ErrEmptyCart is returned by Checkout when the session's cart has no
// items.
var ErrEmptyCart = errors.New("order: cart is empty")

// CustomerInfo is the delivery detail supplied at checkout.
type CustomerInfo struct {
	Name    string
	Phone   string
	Address string
}

// Tracking is an order plus its status history, as shown on the
// tracking page.
type Tracking struct {
	Order   Order
	History []statuslog.Entry
}

// SubmitFunc runs the checkout submission pipeline for one order. The
// production implementation lives in the checkout package; tests swap
// in a fake. Keeping it a function type avoids an import cycle between
// order and checkout.
type SubmitFunc func(ctx context.Context, engine *cart.Engine, ord Order) error

// Service places and manages orders. Checkout reads the session's cart
// through the cart manager, snapshots it into an Order, and runs the
// submission pipeline; on any failure the cart is left untouched.
type Service struct {
	orders Repository
	log    statuslog.Repository
	carts  *cart.Manager
	run    SubmitFunc
}

func NewService(orders Repository, log statuslog.Repository, carts *cart.Manager, run SubmitFunc) *Service {
	return &Service{orders: orders, log: log, carts: carts, run: run}
}

// Checkout builds an order from the session's cart and submits it.
// The order snapshot uses the cart summary (tax-inclusive total); the
// cart is cleared only after the order is safely persisted.
func (s *Service) Checkout(ctx context.Context, sessionID string, info CustomerInfo) (Order, error) {
	var ord Order

	err := s.carts.Do(ctx, sessionID, func(engine *cart.Engine) error {
		items := engine.Items()
		if len(items) == 0 {
			return ErrEmptyCart
		}

		summary := engine.Summary()
		promo, _ := engine.PromoCode()
		now := time.Now().UTC()

		ord = Order{
			ID:           uuid.NewString(),
			SessionID:    sessionID,
			CustomerName: info.Name,
			Phone:        info.Phone,
			Address:      info.Address,
			Items:        linesFromCart(items),
			Subtotal:     summary.Subtotal,
			DeliveryFee:  summary.DeliveryFee,
			Discount:     summary.Discount,
			Tax:          summary.Tax,
			Total:        summary.Total,
			PromoCode:    promo,
			Status:       StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		return s.run(ctx, engine, ord)
	})
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

// Track returns an order together with its status history.
func (s *Service) Track(ctx context.Context, orderID string) (Tracking, error) {
	ord, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return Tracking{}, err
	}
	history, err := s.log.History(ctx, orderID)
	if err != nil {
		return Tracking{}, err
	}
	return Tracking{Order: ord, History: history}, nil
}

// Get returns a single order.
func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	return s.orders.Get(ctx, orderID)
}

// List returns orders matching the filter, newest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Order, error) {
	return s.orders.List(ctx, f)
}

// UpdateStatus advances an order's status and appends the transition to
// the status log. Used by the admin back-office.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status Status, note string) error {
	if !status.Valid() {
		return errors.New("order: invalid status")
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	return s.log.Save(ctx, statuslog.NewEntry(ctx, orderID, string(status), note))
}

func linesFromCart(items []cart.Item) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			Dough:     it.Dough,
			Crust:     it.Crust,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Note:      it.Note,
		}
	}
	return lines
}
