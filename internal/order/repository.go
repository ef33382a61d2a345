package order

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an order id does not exist.
var ErrNotFound = errors.New("order: not found")

// ListFilter narrows List results. The zero value lists everything.
type ListFilter struct {
	Status Status // empty means all statuses
	Limit  int    // 0 means no limit
}

// Repository is the port for order persistence.
type Repository interface {
	Create(ctx context.Context, o Order) error
	Get(ctx context.Context, id string) (Order, error)
	List(ctx context.Context, f ListFilter) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
