package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a pizza id does not exist.
var ErrNotFound = errors.New("catalog: pizza not found")

// Repository is the port for pizza persistence.
type Repository interface {
	List(ctx context.Context) ([]Pizza, error)
	Get(ctx context.Context, id string) (Pizza, error)
	Create(ctx context.Context, p Pizza) error
	Update(ctx context.Context, p Pizza) error
	Delete(ctx context.Context, id string) error
}
