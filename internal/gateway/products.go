package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/caffeinated-sam/Hackathon-E-Commerce/internal/domain"
)

// ListProducts fetches the catalog. Concurrent calls are collapsed into
// one request via singleflight to spare a struggling backend.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do("products", func() (interface{}, error) {
		body, err := c.guarded(ctx, http.MethodGet, "/products", nil)
		if err != nil {
			return nil, err
		}
		var products []domain.Product
		if err := json.Unmarshal(body, &products); err != nil {
			return nil, fmt.Errorf("failed to decode product list: %w", err)
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	body, err := c.guarded(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	body, err := c.guarded(ctx, http.MethodPost, "/products", product)
	if err != nil {
		return nil, err
	}
	var created domain.Product
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to decode created product: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int64, product domain.Product) error {
	_, err := c.guarded(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), product)
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	_, err := c.guarded(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	return err
}
