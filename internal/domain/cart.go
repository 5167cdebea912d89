package domain

import "time"

// CartLine is one cart entry: a product snapshot plus the selected
// variant and its quantity. Size and color are empty when the product
// has no such option.
type CartLine struct {
	ProductID     int64     `json:"id"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	OldPrice      float64   `json:"oldPrice,omitempty"`
	Category      string    `json:"category"`
	CategoryGroup string    `json:"categoryGroup,omitempty"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Image         string    `json:"image"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	SelectedSize  string    `json:"selectedSize,omitempty"`
	SelectedColor string    `json:"selectedColor,omitempty"`
	Quantity      int       `json:"quantity"`
}

// VariantKey identifies a cart line. At most one line exists per key.
type VariantKey struct {
	ProductID int64
	Size      string
	Color     string
}

func (l CartLine) Key() VariantKey {
	return VariantKey{ProductID: l.ProductID, Size: l.SelectedSize, Color: l.SelectedColor}
}

// LineTotal is the line's contribution to the cart total.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// NewCartLine snapshots a product into a line for the given variant.
func NewCartLine(p Product, quantity int, size, color string) CartLine {
	return CartLine{
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OldPrice:      p.OldPrice,
		Category:      p.Category,
		CategoryGroup: p.CategoryGroup,
		Subcategory:   p.Subcategory,
		Image:         p.Image,
		CreatedAt:     p.CreatedAt,
		SelectedSize:  size,
		SelectedColor: color,
		Quantity:      quantity,
	}
}
