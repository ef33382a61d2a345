package cart

// taxRate is the flat tax applied to the subtotal in the summary.
const taxRate = 0.10

// Summary is the pricing breakdown shown at checkout.
type Summary struct {
	Subtotal        float64 `json:"subtotal"`
	DeliveryFee     float64 `json:"delivery_fee"`
	Discount        float64 `json:"discount"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	LoyaltyDiscount float64 `json:"loyalty_discount"`
	PromoDiscount   float64 `json:"promo_discount"`
}

// Summary derives the checkout breakdown from current state.
//
// The returned Total includes the flat 10% tax; the engine's own Total
// field never does. The storefront has always shown these two numbers
// independently, so both computations are kept distinct rather than
// unified. LoyaltyDiscount is reserved and always 0.
func (e *Engine) Summary() Summary {
	subtotal := e.Subtotal()
	tax := subtotal * taxRate
	loyalty := 0.0

	return Summary{
		Subtotal:        subtotal,
		DeliveryFee:     e.fee,
		Discount:        e.discount,
		Tax:             tax,
		Total:           subtotal + e.fee + tax - loyalty - e.discount,
		LoyaltyDiscount: loyalty,
		PromoDiscount:   e.discount,
	}
}
