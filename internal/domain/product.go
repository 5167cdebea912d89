package domain

import "time"

// Product is a read-only catalog item as served by the shop backend.
// Category fields arrive free-form and are resolved through the catalog
// package before they are used for routing or filtering.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"` // F CFA
	OldPrice      float64   `json:"oldPrice,omitempty"`
	Category      string    `json:"category"`
	CategoryGroup string    `json:"categoryGroup,omitempty"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Image         string    `json:"image"` // URL to product image (optional)
	Sizes         []string  `json:"sizes,omitempty"`
	Colors        []string  `json:"colors,omitempty"` // hex tokens
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}
