package httpx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/cart/cartstore"
	"github.com/ovenline/pizza-storefront/internal/catalog"
	"github.com/ovenline/pizza-storefront/internal/checkout"
	"github.com/ovenline/pizza-storefront/internal/httpx"
	"github.com/ovenline/pizza-storefront/internal/order"
	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

const adminToken = "test-admin-token"

// --- fakes ---

type memCatalogRepo struct {
	mu     sync.Mutex
	pizzas map[string]catalog.Pizza
}

func (r *memCatalogRepo) List(context.Context) ([]catalog.Pizza, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Pizza, 0, len(r.pizzas))
	for _, p := range r.pizzas {
		out = append(out, p)
	}
	return out, nil
}

func (r *memCatalogRepo) Get(_ context.Context, id string) (catalog.Pizza, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pizzas[id]
	if !ok {
		return catalog.Pizza{}, catalog.ErrNotFound
	}
	return p, nil
}

func (r *memCatalogRepo) Create(_ context.Context, p catalog.Pizza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pizzas[p.ID] = p
	return nil
}

func (r *memCatalogRepo) Update(_ context.Context, p catalog.Pizza) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pizzas[p.ID]; !ok {
		return catalog.ErrNotFound
	}
	r.pizzas[p.ID] = p
	return nil
}

func (r *memCatalogRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pizzas[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(r.pizzas, id)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[string]order.Order
}

func (r *memOrderRepo) Create(_ context.Context, o order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

// --- server setup ---

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	catalogRepo := &memCatalogRepo{pizzas: map[string]catalog.Pizza{}}
	catalogSvc := catalog.NewService(catalogRepo, nil, 0)

	carts := cart.NewManager(cartstore.NewMemory())

	orderRepo := &memOrderRepo{orders: map[string]order.Order{}}
	statusLog := &memStatusLog{}
	submit := func(ctx context.Context, engine *cart.Engine, ord order.Order) error {
		return checkout.NewPipeline([]checkout.Step{
			checkout.NewPersistOrderStep(orderRepo, ord),
			checkout.NewRecordStatusStep(statusLog, ord.ID, order.StatusPending),
			checkout.NewClearCartStep(engine),
		}).Run(ctx)
	}
	orderSvc := order.NewService(orderRepo, statusLog, carts, submit)

	handler := httpx.NewHandler(catalogSvc, carts, orderSvc)
	admin := httpx.NewAdminHandler(catalogSvc, orderSvc, nil, nil, nil)

	srv := httptest.NewServer(httpx.NewRouter(handler, admin, adminToken))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, sessionID string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func addMargherita(t *testing.T, srv *httptest.Server, sessionID string, qty int) httpx.CartResponse {
	t.Helper()
	resp := doJSON(t, srv, http.MethodPost, "/cart/items", sessionID, httpx.AddItemRequest{
		ProductID: "pz-margherita",
		Name:      "Margherita",
		Size:      "M 30 cm",
		Price:     650,
		Quantity:  qty,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decodeBody[httpx.CartResponse](t, resp)
}

// --- tests ---

func TestSessionIsMintedAndEchoed(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/cart", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Session-ID"))

	cartResp := decodeBody[httpx.CartResponse](t, resp)
	assert.Empty(t, cartResp.Items)
	assert.Zero(t, cartResp.Subtotal)
}

func TestSessionHeaderIsReused(t *testing.T) {
	srv := newTestServer(t)

	addMargherita(t, srv, "sess-1", 2)

	resp := doJSON(t, srv, http.MethodGet, "/cart", "sess-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "sess-1", resp.Header.Get("X-Session-ID"))

	cartResp := decodeBody[httpx.CartResponse](t, resp)
	assert.Equal(t, 2, cartResp.ItemsCount)
}

func TestAddItemReturnsSnapshot(t *testing.T) {
	srv := newTestServer(t)

	cartResp := addMargherita(t, srv, "sess-1", 2)

	require.Len(t, cartResp.Items, 1)
	assert.Equal(t, "Margherita", cartResp.Items[0].Name)
	assert.Equal(t, 1300.0, cartResp.Subtotal)
	assert.Equal(t, 0.0, cartResp.DeliveryFee)
	assert.Equal(t, 1300.0, cartResp.Total)
	assert.Equal(t, 130.0, cartResp.Summary.Tax)
}

func TestUpdateQuantityToZeroRemovesLine(t *testing.T) {
	srv := newTestServer(t)
	cartResp := addMargherita(t, srv, "sess-1", 2)
	itemID := cartResp.Items[0].ID

	zero := 0
	resp := doJSON(t, srv, http.MethodPatch, "/cart/items/"+itemID, "sess-1", httpx.UpdateItemRequest{Quantity: &zero})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeBody[httpx.CartResponse](t, resp)
	assert.Empty(t, updated.Items)
	// Silent removal: the undo buffer only records explicit deletes.
	assert.Empty(t, updated.RecentlyRemoved)
}

func TestRemoveItemFeedsUndoBuffer(t *testing.T) {
	srv := newTestServer(t)
	cartResp := addMargherita(t, srv, "sess-1", 1)
	itemID := cartResp.Items[0].ID

	resp := doJSON(t, srv, http.MethodDelete, "/cart/items/"+itemID, "sess-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated := decodeBody[httpx.CartResponse](t, resp)
	assert.Empty(t, updated.Items)
	require.Len(t, updated.RecentlyRemoved, 1)
	assert.Equal(t, itemID, updated.RecentlyRemoved[0].ID)
}

func TestApplyPromo(t *testing.T) {
	srv := newTestServer(t)
	addMargherita(t, srv, "sess-1", 2)

	resp := doJSON(t, srv, http.MethodPost, "/cart/promo", "sess-1", httpx.PromoRequest{Code: "PIZZA20"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cartResp := decodeBody[httpx.CartResponse](t, resp)
	assert.Equal(t, "PIZZA20", cartResp.PromoCode)
	assert.Equal(t, 200.0, cartResp.Discount)
	assert.Equal(t, 1100.0, cartResp.Total)
}

func TestApplyUnknownPromo(t *testing.T) {
	srv := newTestServer(t)
	addMargherita(t, srv, "sess-1", 2)

	resp := doJSON(t, srv, http.MethodPost, "/cart/promo", "sess-1", httpx.PromoRequest{Code: "NOTREAL"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	errResp := decodeBody[httpx.ErrorResponse](t, resp)
	assert.Equal(t, "promo_not_found", errResp.Error)

	// Cart unchanged.
	getResp := doJSON(t, srv, http.MethodGet, "/cart", "sess-1", nil)
	cartResp := decodeBody[httpx.CartResponse](t, getResp)
	assert.Empty(t, cartResp.PromoCode)
	assert.Zero(t, cartResp.Discount)
}

func TestCheckoutFlow(t *testing.T) {
	srv := newTestServer(t)
	addMargherita(t, srv, "sess-1", 2)

	resp := doJSON(t, srv, http.MethodPost, "/checkout", "sess-1", httpx.CheckoutRequest{
		CustomerName: "Alice",
		Phone:        "555-0101",
		Address:      "1 Main St",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	ord := decodeBody[httpx.OrderResponse](t, resp)
	assert.NotEmpty(t, ord.ID)
	assert.Equal(t, "PENDING", ord.Status)
	assert.Equal(t, 1300.0, ord.Subtotal)
	assert.Equal(t, 1430.0, ord.Total)

	// Cart is cleared by the pipeline.
	getResp := doJSON(t, srv, http.MethodGet, "/cart", "sess-1", nil)
	cartResp := decodeBody[httpx.CartResponse](t, getResp)
	assert.Empty(t, cartResp.Items)

	// Tracking shows the initial status entry.
	trackResp := doJSON(t, srv, http.MethodGet, "/orders/"+ord.ID+"/track", "sess-1", nil)
	require.Equal(t, http.StatusOK, trackResp.StatusCode)
	tracking := decodeBody[httpx.TrackingResponse](t, trackResp)
	assert.Equal(t, ord.ID, tracking.Order.ID)
	require.Len(t, tracking.History, 1)
	assert.Equal(t, "PENDING", tracking.History[0].Status)
}

func TestCheckoutEmptyCart(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/checkout", "sess-1", httpx.CheckoutRequest{
		CustomerName: "Alice",
		Address:      "1 Main St",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	errResp := decodeBody[httpx.ErrorResponse](t, resp)
	assert.Equal(t, "empty_cart", errResp.Error)
}

func TestAdminRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/admin/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminAcceptsBearerToken(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/admin/orders", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+adminToken)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
