package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovenline/pizza-storefront/internal/cart"
)

func TestSummaryBreakdown(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	in := margherita(1)
	in.Price = 1000
	e.AddItem(ctx, in)
	require.NoError(t, e.ApplyPromoCode(ctx, "PIZZA20"))

	s := e.Summary()

	assert.Equal(t, 1000.0, s.Subtotal)
	assert.Equal(t, 0.0, s.DeliveryFee)
	assert.Equal(t, 200.0, s.Discount)
	assert.Equal(t, 100.0, s.Tax)
	assert.Equal(t, 200.0, s.PromoDiscount)
	assert.Zero(t, s.LoyaltyDiscount)
	assert.Equal(t, 900.0, s.Total)
}

// The summary total includes tax; the engine's Total never does. Both
// numbers are shown to the customer in different places and must stay
// independent.
func TestSummaryTotalDiffersFromStateTotal(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	in := margherita(1)
	in.Price = 1000
	e.AddItem(ctx, in)

	s := e.Summary()

	assert.Equal(t, 1000.0, e.Total())
	assert.Equal(t, 1100.0, s.Total)
	assert.Equal(t, e.Total()+s.Tax, s.Total)
}

func TestSummaryBelowFreeDelivery(t *testing.T) {
	ctx := context.Background()
	e := cart.NewEngine("s1", nil)
	in := margherita(1)
	in.Price = 500
	e.AddItem(ctx, in)

	s := e.Summary()

	assert.Equal(t, 500.0, s.Subtotal)
	assert.Equal(t, 200.0, s.DeliveryFee)
	assert.Equal(t, 50.0, s.Tax)
	assert.Equal(t, 750.0, s.Total)
}

func TestSummaryEmptyCart(t *testing.T) {
	e := cart.NewEngine("s1", nil)

	s := e.Summary()

	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.Tax)
	assert.Zero(t, s.Discount)
}
