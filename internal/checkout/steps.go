package checkout

import (
	"context"
	"fmt"

	"github.com/ovenline/pizza-storefront/internal/cart"
	"github.com/ovenline/pizza-storefront/internal/order"
	"github.com/ovenline/pizza-storefront/internal/order/statuslog"
)

// --- PersistOrderStep ---

// PersistOrderStep writes the order to the repository. Compensation
// deletes it again, so a later step failure leaves no orphan order.
type PersistOrderStep struct {
	repo order.Repository
	ord  order.Order
}

func NewPersistOrderStep(repo order.Repository, ord order.Order) *PersistOrderStep {
	return &PersistOrderStep{repo: repo, ord: ord}
}

func (s *PersistOrderStep) Name() string { return "Persist_Order_Step" }

func (s *PersistOrderStep) Execute(ctx context.Context) error {
	if err := s.repo.Create(ctx, s.ord); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}
	return nil
}

func (s *PersistOrderStep) Compensate(ctx context.Context) error {
	return s.repo.Delete(ctx, s.ord.ID)
}

// --- RecordStatusStep ---

// RecordStatusStep appends the order's first status log entry.
type RecordStatusStep struct {
	log     statuslog.Repository
	orderID string
	status  order.Status
}

func NewRecordStatusStep(log statuslog.Repository, orderID string, status order.Status) *RecordStatusStep {
	return &RecordStatusStep{log: log, orderID: orderID, status: status}
}

func (s *RecordStatusStep) Name() string { return "Record_Status_Step" }

func (s *RecordStatusStep) Execute(ctx context.Context) error {
	entry := statuslog.NewEntry(ctx, s.orderID, string(s.status), "order placed")
	if err := s.log.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to record order status: %w", err)
	}
	return nil
}

func (s *RecordStatusStep) Compensate(ctx context.Context) error {
	// The log is append-only; a cancelled checkout simply leaves the
	// PENDING row behind with no matching order.
	return nil
}

// --- ClearCartStep ---

// ClearCartStep empties the cart after the order is safely persisted.
// It runs last, so it has nothing to compensate.
type ClearCartStep struct {
	engine *cart.Engine
}

func NewClearCartStep(engine *cart.Engine) *ClearCartStep {
	return &ClearCartStep{engine: engine}
}

func (s *ClearCartStep) Name() string { return "Clear_Cart_Step" }

func (s *ClearCartStep) Execute(ctx context.Context) error {
	s.engine.ClearCart(ctx)
	return nil
}

func (s *ClearCartStep) Compensate(ctx context.Context) error {
	return nil
}
