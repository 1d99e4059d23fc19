package order

import (
	"context"
	"fmt"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

// Service is the order-service contract the gateway consumes.
type Service interface {
	Create(ctx context.Context, req *CreateRequest) (*Order, error)
	ByID(ctx context.Context, id int64) (*Order, error)
	ByCustomer(ctx context.Context, customerID int64) ([]*Order, error)
	ByStatus(ctx context.Context, status Status) ([]*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error)
}

type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Create(ctx context.Context, req *CreateRequest) (*Order, error) {
	var created Order
	if err := c.api.Post(ctx, "/orders", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) ByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	if err := c.api.Get(ctx, fmt.Sprintf("/orders/%d", id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) ByCustomer(ctx context.Context, customerID int64) ([]*Order, error) {
	var orders []*Order
	err := c.api.GetList(ctx, fmt.Sprintf("/orders/customer/%d", customerID), &orders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ByStatus(ctx context.Context, status Status) ([]*Order, error) {
	var orders []*Order
	if err := c.api.GetList(ctx, "/orders/status/"+string(status), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, status Status) (*Order, error) {
	var o Order
	path := fmt.Sprintf("/orders/%d/status?status=%s", id, status)
	if err := c.api.Patch(ctx, path, nil, &o); err != nil {
		return nil, fmt.Errorf("update status of order %d: %w", id, err)
	}
	return &o, nil
}
