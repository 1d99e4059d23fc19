package catalog

import (
	"context"
	"fmt"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

// Service is the product-service contract the gateway consumes.
type Service interface {
	All(ctx context.Context) ([]Product, error)
	Available(ctx context.Context) ([]Product, error)
	ByID(ctx context.Context, id int64) (*Product, error)
	ByCategory(ctx context.Context, category string) ([]Product, error)
	BySaleType(ctx context.Context, saleType string) ([]Product, error)
	UpdateStock(ctx context.Context, id int64, quantity int) error
}

type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) All(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.api.GetList(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return products, nil
}

func (c *Client) Available(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.api.GetList(ctx, "/products/available", &products); err != nil {
		return nil, fmt.Errorf("fetch available products: %w", err)
	}
	return products, nil
}

func (c *Client) ByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.api.Get(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ByCategory(ctx context.Context, category string) ([]Product, error) {
	var products []Product
	if err := c.api.GetList(ctx, "/products/category/"+category, &products); err != nil {
		return nil, fmt.Errorf("fetch products by category: %w", err)
	}
	return products, nil
}

func (c *Client) BySaleType(ctx context.Context, saleType string) ([]Product, error) {
	var products []Product
	if err := c.api.GetList(ctx, "/products/sale/"+saleType, &products); err != nil {
		return nil, fmt.Errorf("fetch products by sale type: %w", err)
	}
	return products, nil
}

func (c *Client) UpdateStock(ctx context.Context, id int64, quantity int) error {
	path := fmt.Sprintf("/products/%d/stock?quantity=%d", id, quantity)
	if err := c.api.Patch(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("update stock for product %d: %w", id, err)
	}
	return nil
}
