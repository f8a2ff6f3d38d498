package domain

// OrderSubmission is one order line sent to the backend. Each cart entry
// produces exactly one submission; there is no atomicity across the set.
type OrderSubmission struct {
	ProductID    int64  `json:"productId"`
	Quantity     int    `json:"quantity"`
	CustomerName string `json:"customerName"`
}

// Order is the backend's view of a placed order line.
type Order struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"productId"`
	Quantity     int     `json:"quantity"`
	CustomerName string  `json:"customerName"`
	TotalPrice   float64 `json:"totalPrice,omitempty"`
	Status       string  `json:"status,omitempty"`
	CreatedAt    string  `json:"createdAt,omitempty"`
}
