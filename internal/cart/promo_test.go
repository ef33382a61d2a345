package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/pizza-storefront/internal/cart"
)

func TestApplyPromoCode(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	in := margherita(1)
	in.Price = 1000
	e.AddItem(ctx, in)

	require.NoError(t, e.ApplyPromoCode(ctx, "PIZZA20"))

	assert.Equal(t, 200.0, e.Discount())
	code, ok := e.PromoCode()
	assert.True(t, ok)
	assert.Equal(t, "PIZZA20", code)
	// subtotal 1000 ⇒ free delivery ⇒ total 1000 + 0 − 200.
	assert.Equal(t, 800.0, e.Total())
}

func TestApplyPromoCodeUnknown(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	e.AddItem(ctx, margherita(1))
	totalBefore := e.Total()

	err := e.ApplyPromoCode(ctx, "NOTREAL")

	assert.ErrorIs(t, err, cart.ErrPromoNotFound)
	assert.Zero(t, e.Discount())
	_, ok := e.PromoCode()
	assert.False(t, ok)
	assert.Equal(t, totalBefore, e.Total())
}

func TestApplyPromoCodeIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)

	assert.ErrorIs(t, e.ApplyPromoCode(ctx, "pizza20"), cart.ErrPromoNotFound)
}

func TestApplyPromoCodeOverwrites(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	e.AddItem(ctx, margherita(2))

	require.NoError(t, e.ApplyPromoCode(ctx, "PIZZA20"))
	require.NoError(t, e.ApplyPromoCode(ctx, "FIRST10"))

	// No stacking: the second code replaces the first.
	assert.Equal(t, 100.0, e.Discount())
	code, _ := e.PromoCode()
	assert.Equal(t, "FIRST10", code)
}

func TestRemovePromoCodeIdempotent(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	e.AddItem(ctx, margherita(2))
	require.NoError(t, e.ApplyPromoCode(ctx, "WEEKEND"))

	e.RemovePromoCode(ctx)
	afterFirst := e.Total()
	e.RemovePromoCode(ctx)

	assert.Zero(t, e.Discount())
	_, ok := e.PromoCode()
	assert.False(t, ok)
	assert.Equal(t, afterFirst, e.Total())
	assert.Equal(t, e.Subtotal()+e.DeliveryFee(), e.Total())
}
