// Package domain contains the normalized plan catalog read from the content
// backend.
package domain

// Plan is a sellable offering. Sourced read-only per request; never mutated
// here.
type Plan struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Currency      string   `json:"currency"`
	Recurring     bool     `json:"recurring"`
	PriceRef      string   `json:"stripe_price_id"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Cycles        *int     `json:"cycles,omitempty"`
}
