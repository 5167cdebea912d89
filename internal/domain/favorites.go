package domain

import "time"

// FavoriteItem is the reduced product projection persisted for the
// favorites list.
type FavoriteItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Image         string    `json:"image"`
	Price         float64   `json:"price"`
	OldPrice      float64   `json:"oldPrice,omitempty"`
	Category      string    `json:"category"`
	CategoryGroup string    `json:"categoryGroup,omitempty"`
	Subcategory   string    `json:"subcategory,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

// NewFavoriteItem projects a product into its stored favorite form.
func NewFavoriteItem(p Product, addedAt time.Time) FavoriteItem {
	return FavoriteItem{
		ID:            p.ID,
		Name:          p.Name,
		Image:         p.Image,
		Price:         p.Price,
		OldPrice:      p.OldPrice,
		Category:      p.Category,
		CategoryGroup: p.CategoryGroup,
		Subcategory:   p.Subcategory,
		CreatedAt:     p.CreatedAt,
		AddedAt:       addedAt,
	}
}
