// Package catalog holds the pizza catalog domain: the products the
// storefront sells, their per-size prices, and the ports used to load
// and manage them. The cart engine never validates against the catalog;
// it trusts the inputs built from it.
package catalog

import "time"

// SizePrice is one sellable size of a pizza: a display label (size name
// plus diameter) and its base price before modifier surcharges.
type SizePrice struct {
	Name     string  `json:"name"`
	Diameter string  `json:"diameter,omitempty"`
	Price    float64 `json:"price"`
}

// Pizza is a catalog product.
type Pizza struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Image       string      `json:"image,omitempty"`
	Sizes       []SizePrice `json:"sizes"`
	Available   bool        `json:"available"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
