package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
)

// CreateOrder submits one order line. idempotencyKey lets the backend
// deduplicate retried submissions of the same checkout line.
func (c *Client) CreateOrder(ctx context.Context, sub domain.OrderSubmission, idempotencyKey string) (*domain.Order, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doWithHeader(ctx, http.MethodPost, "/orders", sub, "Idempotency-Key", idempotencyKey)
	})
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to decode created order: %w", err)
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	body, err := c.guarded(ctx, http.MethodGet, "/orders", nil)
	if err != nil {
		return nil, err
	}
	var orders []domain.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode order list: %w", err)
	}
	return orders, nil
}
