// Package settings is the admin-editable key/value configuration shown
// on the storefront (store name, opening hours, banner copy). It is
// display configuration only: pricing constants like the delivery
// threshold live in the cart engine, not here.
package settings

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a settings key does not exist.
var ErrNotFound = errors.New("settings: key not found")

// Setting is one key/value pair.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Repository is the port for settings persistence.
type Repository interface {
	All(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (Setting, error)
	// Set upserts a key.
	Set(ctx context.Context, s Setting) error
	Delete(ctx context.Context, key string) error
}
