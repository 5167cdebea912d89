package domain

// OrderRequest is one cart line's worth of order data, posted to the
// backend once per line. PaymentID is shared across every line of the
// same checkout.
type OrderRequest struct {
	UserID      string  `json:"userId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"totalPrice"`
	Address     string  `json:"address"`
	Status      string  `json:"status"`
	PaymentID   string  `json:"paymentId"`
}

// OrderStatusPaid is the status label the backend admin screens expect
// for orders settled through the mobile money flow.
const OrderStatusPaid = "Payé (Mobile Money)"

// QuoteItem is the reduced line shape accepted by the order quote
// endpoint.
type QuoteItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// Buyer identifies who places the order.
type Buyer struct {
	UserID string `json:"userId"`
}

// ShippingInfo is the delivery form content. It is flattened into the
// combined address string carried by every order line.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}
