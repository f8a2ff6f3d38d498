package domain

// Product mirrors the product record served by the commerce backend.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Category      string  `json:"category,omitempty"`
	Image         string  `json:"image,omitempty"`
}
