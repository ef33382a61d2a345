package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/catalog"
	"github.com/ovenline/pizza-storefront/internal/httpx/middlewares"
	"github.com/ovenline/pizza-storefront/internal/order"
)

const timeLayout = time.RFC3339

// Handler handles the customer-facing storefront: catalog browsing,
// the session cart, checkout, and order tracking.
type Handler struct {
	catalog *catalog.Service
	carts   *cart.Manager
	orders  *order.Service
}

func NewHandler(c *catalog.Service, carts *cart.Manager, orders *order.Service) *Handler {
	return &Handler{catalog: c, carts: carts, orders: orders}
}

// ListPizzas returns the full menu.
func (h *Handler) ListPizzas(w http.ResponseWriter, r *http.Request) {
	pizzas, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pizzas)
}

// GetPizza returns a single menu entry.
func (h *Handler) GetPizza(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "pizza_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetCart returns the full cart snapshot for the session.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(e *cart.Engine) error { return nil })
}

// AddCartItem adds a line (or merges into an existing one).
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity < 1 || req.Price < 0 {
		writeError(w, http.StatusBadRequest, "invalid_item", "product_id, positive quantity, and non-negative price are required")
		return
	}

	h.withCart(w, r, func(e *cart.Engine) error {
		e.AddItem(r.Context(), cart.ItemInput{
			ProductID: req.ProductID,
			Name:      req.Name,
			Size:      req.Size,
			Price:     req.Price,
			Quantity:  req.Quantity,
			Image:     req.Image,
			Dough:     req.Dough,
			Crust:     req.Crust,
			Extras:    req.Extras,
			Note:      req.Note,
		})
		return nil
	})
}

// RemoveCartItem deletes a line, keeping a copy in the recently-removed
// buffer for undo.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withCart(w, r, func(e *cart.Engine) error {
		e.RemoveItem(r.Context(), id)
		return nil
	})
}

// UpdateCartItem patches a line's fields and/or sets its quantity.
// A quantity of zero or less removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	id := chi.URLParam(r, "id")

	h.withCart(w, r, func(e *cart.Engine) error {
		patch := cart.ItemPatch{
			Name:   req.Name,
			Size:   req.Size,
			Price:  req.Price,
			Image:  req.Image,
			Dough:  req.Dough,
			Crust:  req.Crust,
			Extras: req.Extras,
			Note:   req.Note,
		}
		if patch != (cart.ItemPatch{}) {
			e.UpdateItem(r.Context(), id, patch)
		}
		if req.Quantity != nil {
			e.UpdateQuantity(r.Context(), id, *req.Quantity)
		}
		return nil
	})
}

// DuplicateCartItem re-adds a line's contents, merging per the usual
// rule.
func (h *Handler) DuplicateCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withCart(w, r, func(e *cart.Engine) error {
		e.DuplicateItem(r.Context(), id)
		return nil
	})
}

// SaveCartItem moves a line to saved-for-later.
func (h *Handler) SaveCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withCart(w, r, func(e *cart.Engine) error {
		e.SaveForLater(r.Context(), id)
		return nil
	})
}

// MoveCartItem moves a saved-for-later line back into the cart.
func (h *Handler) MoveCartItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withCart(w, r, func(e *cart.Engine) error {
		e.MoveToCart(r.Context(), id)
		return nil
	})
}

// RestoreCartItem undoes a removal using the snapshot the client kept.
func (h *Handler) RestoreCartItem(w http.ResponseWriter, r *http.Request) {
	var item cart.Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if item.ID == "" {
		writeError(w, http.StatusBadRequest, "invalid_item", "item id is required")
		return
	}

	h.withCart(w, r, func(e *cart.Engine) error {
		e.RestoreItem(r.Context(), item)
		return nil
	})
}

// ClearCart empties the cart. Saved-for-later survives.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(e *cart.Engine) error {
		e.ClearCart(r.Context())
		return nil
	})
}

// ApplyPromo applies a promo code. Unknown codes fail softly with the
// cart unchanged.
func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req PromoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	sessionID := middlewares.SessionID(r.Context())
	err := h.carts.Do(r.Context(), sessionID, func(e *cart.Engine) error {
		return e.ApplyPromoCode(r.Context(), req.Code)
	})
	if errors.Is(err, cart.ErrPromoNotFound) {
		writeError(w, http.StatusNotFound, "promo_not_found", "unknown promo code")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}

	h.withCart(w, r, func(e *cart.Engine) error { return nil })
}

// RemovePromo clears any applied promo code.
func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	h.withCart(w, r, func(e *cart.Engine) error {
		e.RemovePromoCode(r.Context())
		return nil
	})
}

// GetSummary returns the checkout pricing breakdown.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := middlewares.SessionID(r.Context())

	var summary cart.Summary
	err := h.carts.Do(r.Context(), sessionID, func(e *cart.Engine) error {
		summary = e.Summary()
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Checkout submits the session's cart as an order.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.CustomerName == "" || req.Address == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "customer_name and address are required")
		return
	}

	sessionID := middlewares.SessionID(r.Context())
	slog.InfoContext(r.Context(), "checkout requested", "session_id", sessionID)

	ord, err := h.orders.Checkout(r.Context(), sessionID, order.CustomerInfo{
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if errors.Is(err, order.ErrEmptyCart) {
		writeError(w, http.StatusBadRequest, "empty_cart", "cannot checkout an empty cart")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, "checkout_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, mapOrderToResponse(ord))
}

// TrackOrder returns an order with its status history.
func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	tracking, err := h.orders.Track(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, order.ErrNotFound) {
		writeError(w, http.StatusNotFound, "order_not_found", "")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "tracking_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, TrackingResponse{
		Order:   mapOrderToResponse(tracking.Order),
		History: mapHistoryToResponse(tracking.History),
	})
}

// withCart runs a mutation against the session's cart and responds with
// the resulting snapshot. Unknown-identity operations are no-ops inside
// the engine, so the snapshot is the single source of truth for the UI.
func (h *Handler) withCart(w http.ResponseWriter, r *http.Request, fn func(*cart.Engine) error) {
	sessionID := middlewares.SessionID(r.Context())

	var resp CartResponse
	err := h.carts.Do(r.Context(), sessionID, func(e *cart.Engine) error {
		if err := fn(e); err != nil {
			return err
		}
		promo, _ := e.PromoCode()
		resp = CartResponse{
			Items:           e.Items(),
			SavedForLater:   e.SavedForLater(),
			RecentlyRemoved: e.RecentlyRemoved(),
			ItemsCount:      e.ItemsCount(),
			Subtotal:        e.Subtotal(),
			DeliveryFee:     e.DeliveryFee(),
			Discount:        e.Discount(),
			PromoCode:       promo,
			Total:           e.Total(),
			Summary:         e.Summary(),
		}
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cart_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
