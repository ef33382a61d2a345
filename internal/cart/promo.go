package cart

import "errors"

// ErrPromoNotFound is returned by ApplyPromoCode for an unrecognized
// code. The cart state is left unchanged; the caller surfaces a message
// and may retry.
var ErrPromoNotFound = errors.New("cart: promo code not found")

// promoCodes maps a code to a flat discount in currency units.
// Lookup is exact and case-sensitive. In a server-backed redesign this
// becomes a service call with the same success/not-found contract.
var promoCodes = map[string]float64{
	"PIZZA20": 200,
	"FIRST10": 100,
	"WEEKEND": 150,
}

func lookupPromo(code string) (float64, bool) {
	discount, ok := promoCodes[code]
	return discount, ok
}
