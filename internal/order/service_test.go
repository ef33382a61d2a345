package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/checkout"
	"github.com/ovenline/pizza-storefront/internal/order"
	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

type memOrderRepo struct {
	mu        sync.Mutex
	orders    map[string]order.Order
	createErr error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]order.Order)}
}

func (r *memOrderRepo) Create(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.orders[o.ID] = o
	return nil
}

func (r *memOrderRepo) Get(_ context.Context, id string) (order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.Order{}, order.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) List(_ context.Context, f order.ListFilter) ([]order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, o := range r.orders {
		if f.Status == "" || o.Status == f.Status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return order.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type memStatusLog struct {
	mu      sync.Mutex
	entries []statuslog.Entry
}

func (l *memStatusLog) Save(_ context.Context, e *statuslog.Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *e)
	return nil
}

func (l *memStatusLog) History(_ context.Context, orderID string) ([]statuslog.Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []statuslog.Entry
	for _, e := range l.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func newService(repo *memOrderRepo, log *memStatusLog) (*order.Service, *cart.Manager) {
	carts := cart.NewManager(nil)
	submit := func(ctx context.Context, engine *cart.Engine, ord order.Order) error {
		return checkout.NewPipeline([]checkout.Step{
			checkout.NewPersistOrderStep(repo, ord),
			checkout.NewRecordStatusStep(log, ord.ID, order.StatusPending),
			checkout.NewClearCartStep(engine),
		}).Run(ctx)
	}
	return order.NewService(repo, log, carts, submit), carts
}

func fillCart(t *testing.T, carts *cart.Manager, sessionID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, carts.Do(ctx, sessionID, func(e *cart.Engine) error {
		e.AddItem(ctx, cart.ItemInput{
			ProductID: "pz-margherita",
			Name:      "Margherita",
			Size:      "M 30 cm",
			Price:     650,
			Quantity:  2,
		})
		return nil
	}))
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	log := &memStatusLog{}
	svc, carts := newService(repo, log)
	fillCart(t, carts, "alice")

	ord, err := svc.Checkout(ctx, "alice", order.CustomerInfo{
		Name:    "Alice",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, order.StatusPending, ord.Status)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, 2, ord.Items[0].Quantity)

	// Pricing is the cart summary snapshot: subtotal 1300, free
	// delivery, 10% tax.
	assert.Equal(t, 1300.0, ord.Subtotal)
	assert.Equal(t, 0.0, ord.DeliveryFee)
	assert.Equal(t, 130.0, ord.Tax)
	assert.Equal(t, 1430.0, ord.Total)

	stored, err := repo.Get(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, ord.ID, stored.ID)

	history, err := log.History(ctx, ord.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(order.StatusPending), history[0].Status)

	require.NoError(t, carts.Do(ctx, "alice", func(e *cart.Engine) error {
		assert.Empty(t, e.Items())
		return nil
	}))
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newService(newMemOrderRepo(), &memStatusLog{})

	_, err := svc.Checkout(context.Background(), "nobody", order.CustomerInfo{Name: "N", Address: "A"})

	assert.ErrorIs(t, err, order.ErrEmptyCart)
}

func TestCheckoutFailureLeavesCartUntouched(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	repo.createErr = errors.New("disk full")
	svc, carts := newService(repo, &memStatusLog{})
	fillCart(t, carts, "alice")

	_, err := svc.Checkout(ctx, "alice", order.CustomerInfo{Name: "Alice", Address: "1 Main St"})
	require.Error(t, err)

	require.NoError(t, carts.Do(ctx, "alice", func(e *cart.Engine) error {
		assert.Equal(t, 2, e.ItemsCount())
		return nil
	}))
	assert.Empty(t, repo.orders)
}

func TestUpdateStatusAppendsLog(t *testing.T) {
	ctx := context.Background()
	repo := newMemOrderRepo()
	log := &memStatusLog{}
	svc, carts := newService(repo, log)
	fillCart(t, carts, "alice")

	ord, err := svc.Checkout(ctx, "alice", order.CustomerInfo{Name: "Alice", Address: "1 Main St"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, ord.ID, order.StatusConfirmed, "kitchen accepted"))

	tracking, err := svc.Track(ctx, ord.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, tracking.Order.Status)
	require.Len(t, tracking.History, 2)
	assert.Equal(t, string(order.StatusPending), tracking.History[0].Status)
	assert.Equal(t, string(order.StatusConfirmed), tracking.History[1].Status)
	assert.Equal(t, "kitchen accepted", tracking.History[1].Note)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newService(newMemOrderRepo(), &memStatusLog{})

	err := svc.UpdateStatus(context.Background(), "whatever", order.Status("BROKEN"), "")

	require.Error(t, err)
}

func TestTrackUnknownOrder(t *testing.T) {
	svc, _ := newService(newMemOrderRepo(), &memStatusLog{})

	_, err := svc.Track(context.Background(), "missing")

	assert.ErrorIs(t, err, order.ErrNotFound)
}
