package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/pizza-storefront/internal/cart"
)

func TestManagerIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(newFakeStore())

	require.NoError(t, m.Do(ctx, "alice", func(e *cart.Engine) error {
		e.AddItem(ctx, margherita(2))
		return nil
	}))

	require.NoError(t, m.Do(ctx, "bob", func(e *cart.Engine) error {
		assert.Empty(t, e.Items())
		return nil
	}))

	require.NoError(t, m.Do(ctx, "alice", func(e *cart.Engine) error {
		assert.Equal(t, 2, e.ItemsCount())
		return nil
	}))
}

func TestManagerHydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	seed := cart.NewEngine("alice", store)
	require.NoError(t, seed.Hydrate(ctx))
	it := seed.AddItem(ctx, margherita(1))
	seed.SaveForLater(ctx, it.ID)

	m := cart.NewManager(store)
	require.NoError(t, m.Do(ctx, "alice", func(e *cart.Engine) error {
		assert.Empty(t, e.Items())
		saved := e.SavedForLater()
		require.Len(t, saved, 1)
		assert.Equal(t, it.ID, saved[0].ID)
		return nil
	}))
}

func TestManagerPropagatesCallbackError(t *testing.T) {
	ctx := context.Background()
	m := cart.NewManager(nil)

	err := m.Do(ctx, "alice", func(e *cart.Engine) error {
		return cart.ErrPromoNotFound
	})
	assert.ErrorIs(t, err, cart.ErrPromoNotFound)
}
