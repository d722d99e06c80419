package catalog

import "time"

// Product is read-mostly from this service's point of view: the storefront
// browses it and order validation checks price and stock against it.
type Product struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Sizes     []string  `json:"sizes"`
	Colors    []string  `json:"colors"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}
