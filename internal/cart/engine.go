// Package cart implements the storefront's cart pricing and lifecycle
// engine: an in-memory state container with deterministic transition
// rules over three item collections (active items, saved-for-later, and
// a bounded recently-removed buffer), a promo-code discount, and derived
// delivery-fee/total fields recomputed after every mutation.
//
// The engine is not safe for concurrent use; Manager serializes access
// per session.
package cart

import (
	"context"
	"log/slog"
)

// Pricing constants, in whole currency units.
const (
	// freeDeliveryThreshold is the subtotal at which delivery becomes free.
	freeDeliveryThreshold = 800
	// deliveryFee is the flat fee charged below the threshold.
	deliveryFee = 200
	// recentlyRemovedCap bounds the undo buffer for deleted lines.
	recentlyRemovedCap = 5
)

// Engine holds the authoritative cart state for one session/device.
// All mutations are synchronous; items and savedForLater are written
// through to the store after every change, fire-and-forget.
type Engine struct {
	sessionID string
	store     Store

	items           []Item
	savedForLater   []Item
	recentlyRemoved []Item // newest first, capped
	discount        float64
	promoCode       string
	fee             float64
	total           float64
}

// NewEngine returns an empty engine for the given session. A nil store
// disables persistence (useful in tests).
func NewEngine(sessionID string, store Store) *Engine {
	return &Engine{sessionID: sessionID, store: store}
}

// Hydrate loads both persisted slots, replacing items and savedForLater
// wholesale. Discount and promo code are session-local and not persisted,
// so totals are recomputed against the current (usually zero) discount.
// Called once at session start, before any mutation.
func (e *Engine) Hydrate(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	items, err := e.store.LoadSlot(ctx, e.sessionID, SlotItems)
	if err != nil {
		return err
	}
	saved, err := e.store.LoadSlot(ctx, e.sessionID, SlotSavedForLater)
	if err != nil {
		return err
	}
	e.items = items
	e.savedForLater = saved
	e.recompute()
	return nil
}

// AddItem appends a new line, or increments the quantity of an existing
// line with the same merge key (product, size, dough, crust). Returns
// the line that was created or updated.
func (e *Engine) AddItem(ctx context.Context, in ItemInput) Item {
	defer e.finishItems(ctx)

	for i := range e.items {
		if sameLine(e.items[i], in) {
			e.items[i].Quantity += in.Quantity
			return e.items[i]
		}
	}
	it := newItem(in)
	e.items = append(e.items, it)
	return it
}

// RemoveItem deletes a line by identity and pushes a copy onto the
// recently-removed buffer so it can be restored. Unknown identities are
// a no-op (totals are still recomputed).
func (e *Engine) RemoveItem(ctx context.Context, id string) {
	defer e.finishItems(ctx)

	for i, it := range e.items {
		if it.ID != id {
			continue
		}
		e.items = append(e.items[:i], e.items[i+1:]...)
		e.recentlyRemoved = append([]Item{it}, e.recentlyRemoved...)
		if len(e.recentlyRemoved) > recentlyRemovedCap {
			e.recentlyRemoved = e.recentlyRemoved[:recentlyRemovedCap]
		}
		return
	}
}

// UpdateQuantity sets the quantity on a line. A quantity of zero or
// below removes the line silently: it does NOT enter the
// recently-removed buffer, unlike an explicit RemoveItem.
func (e *Engine) UpdateQuantity(ctx context.Context, id string, quantity int) {
	defer e.finishItems(ctx)

	for i := range e.items {
		if e.items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			e.items = append(e.items[:i], e.items[i+1:]...)
		} else {
			e.items[i].Quantity = quantity
		}
		return
	}
}

// UpdateItem shallow-merges the patch into the matching line. Changing
// size/dough/crust here never triggers a merge with another line.
func (e *Engine) UpdateItem(ctx context.Context, id string, patch ItemPatch) {
	defer e.finishItems(ctx)

	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i] = patch.apply(e.items[i])
			return
		}
	}
}

// ClearCart resets items, discount, promo code, fee, and total to the
// empty state. savedForLater and recentlyRemoved are untouched.
// Idempotent.
func (e *Engine) ClearCart(ctx context.Context) {
	e.items = nil
	e.discount = 0
	e.promoCode = ""
	e.fee = 0
	e.total = 0
	e.persist(ctx, SlotItems, e.items)
}

// ApplyPromoCode looks the code up in the promo table. On a match the
// discount and code are set (replacing any previous promo, no stacking)
// and totals recomputed. An unknown code returns ErrPromoNotFound and
// leaves state unchanged.
func (e *Engine) ApplyPromoCode(ctx context.Context, code string) error {
	discount, ok := lookupPromo(code)
	if !ok {
		return ErrPromoNotFound
	}
	e.discount = discount
	e.promoCode = code
	e.recompute()
	return nil
}

// RemovePromoCode clears the discount and promo code. Idempotent.
func (e *Engine) RemovePromoCode(ctx context.Context) {
	e.discount = 0
	e.promoCode = ""
	e.recompute()
}

// SaveForLater moves a line from items to savedForLater, fields
// unchanged. The line is removed from the source before being appended
// to the destination, so the two collections stay disjoint by
// construction.
func (e *Engine) SaveForLater(ctx context.Context, id string) {
	defer e.finishBoth(ctx)

	for i, it := range e.items {
		if it.ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			e.savedForLater = append(e.savedForLater, it)
			return
		}
	}
}

// MoveToCart moves a line from savedForLater back into items. The line
// is appended as-is, never merged, even when an identical line already
// exists.
func (e *Engine) MoveToCart(ctx context.Context, id string) {
	defer e.finishBoth(ctx)

	for i, it := range e.savedForLater {
		if it.ID == id {
			e.savedForLater = append(e.savedForLater[:i], e.savedForLater[i+1:]...)
			e.items = append(e.items, it)
			return
		}
	}
}

// RestoreItem undoes a RemoveItem: the supplied snapshot is appended to
// items with its identity preserved, and any entry with the same
// identity is purged from the recently-removed buffer.
func (e *Engine) RestoreItem(ctx context.Context, it Item) {
	defer e.finishItems(ctx)

	e.items = append(e.items, it)
	for i, removed := range e.recentlyRemoved {
		if removed.ID == it.ID {
			e.recentlyRemoved = append(e.recentlyRemoved[:i], e.recentlyRemoved[i+1:]...)
			break
		}
	}
}

// DuplicateItem finds a line, strips its identity, and re-runs AddItem
// with the remaining fields, so the duplicate merges into an existing
// identical line per the usual merge rule.
func (e *Engine) DuplicateItem(ctx context.Context, id string) {
	for _, it := range e.items {
		if it.ID == id {
			e.AddItem(ctx, ItemInput{
				ProductID: it.ProductID,
				Name:      it.Name,
				Size:      it.Size,
				Price:     it.Price,
				Quantity:  it.Quantity,
				Image:     it.Image,
				Dough:     it.Dough,
				Crust:     it.Crust,
				Extras:    it.Extras,
				Note:      it.Note,
			})
			return
		}
	}
}

// ItemsCount returns the sum of quantities across active items.
// savedForLater and recentlyRemoved are excluded.
func (e *Engine) ItemsCount() int {
	count := 0
	for _, it := range e.items {
		count += it.Quantity
	}
	return count
}

// Items returns a copy of the active item list, insertion order
// preserved.
func (e *Engine) Items() []Item {
	return append([]Item(nil), e.items...)
}

// SavedForLater returns a copy of the saved-for-later list.
func (e *Engine) SavedForLater() []Item {
	return append([]Item(nil), e.savedForLater...)
}

// RecentlyRemoved returns a copy of the undo buffer, most recent first.
func (e *Engine) RecentlyRemoved() []Item {
	return append([]Item(nil), e.recentlyRemoved...)
}

// Subtotal is Σ(price × quantity) over active items.
func (e *Engine) Subtotal() float64 {
	subtotal := 0.0
	for _, it := range e.items {
		subtotal += it.Price * float64(it.Quantity)
	}
	return subtotal
}

// DeliveryFee returns the current derived delivery fee.
func (e *Engine) DeliveryFee() float64 { return e.fee }

// Discount returns the currently applied promo discount, 0 when none.
func (e *Engine) Discount() float64 { return e.discount }

// PromoCode returns the applied code and whether one is present.
// The code is set iff the discount came from a promo.
func (e *Engine) PromoCode() (string, bool) {
	return e.promoCode, e.promoCode != ""
}

// Total returns the state total: subtotal + deliveryFee − discount.
// Note this never includes tax; Summary reports a tax-inclusive total
// separately.
func (e *Engine) Total() float64 { return e.total }

// recompute refreshes the derived fee and total. Runs after every
// mutation that can change the subtotal or discount.
func (e *Engine) recompute() {
	subtotal := e.Subtotal()
	if subtotal >= freeDeliveryThreshold {
		e.fee = 0
	} else {
		e.fee = deliveryFee
	}
	e.total = subtotal + e.fee - e.discount
}

// finishItems recomputes totals and writes the items slot through to
// the store.
func (e *Engine) finishItems(ctx context.Context) {
	e.recompute()
	e.persist(ctx, SlotItems, e.items)
}

// finishBoth is finishItems plus the saved-for-later slot, for the move
// operations that touch both lists.
func (e *Engine) finishBoth(ctx context.Context) {
	e.recompute()
	e.persist(ctx, SlotItems, e.items)
	e.persist(ctx, SlotSavedForLater, e.savedForLater)
}

// persist is fire-and-forget: a failed write loses at most the last
// mutation on restart and never corrupts the in-memory state.
func (e *Engine) persist(ctx context.Context, slot string, items []Item) {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSlot(ctx, e.sessionID, slot, items); err != nil {
		slog.WarnContext(ctx, "cart snapshot write failed",
			"session_id", e.sessionID, "slot", slot, "error", err)
	}
}
