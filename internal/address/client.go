package address

import (
	"context"
	"fmt"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

// Service is the address-service contract the store consumes.
type Service interface {
	ByCustomer(ctx context.Context, customerID int64) ([]Address, error)
	DefaultFor(ctx context.Context, customerID int64) (*Address, error)
	Create(ctx context.Context, customerID int64, draft Draft) (*Address, error)
	Update(ctx context.Context, addressID int64, draft Draft) (*Address, error)
	Delete(ctx context.Context, addressID int64) error
	SetDefault(ctx context.Context, addressID int64) (*Address, error)
	ByType(ctx context.Context, customerID int64, addrType Type) ([]Address, error)
	Exists(ctx context.Context, customerID int64) (bool, error)
}

type Client struct {
	api *backend.Client
}

func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ByCustomer(ctx context.Context, customerID int64) ([]Address, error) {
	var addresses []Address
	err := c.api.GetList(ctx, fmt.Sprintf("/addresses/customer/%d", customerID), &addresses)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) DefaultFor(ctx context.Context, customerID int64) (*Address, error) {
	var addr Address
	err := c.api.Get(ctx, fmt.Sprintf("/addresses/customer/%d/default", customerID), &addr)
	if err != nil {
		return nil, err
	}
	return &addr, nil
}

func (c *Client) Create(ctx context.Context, customerID int64, draft Draft) (*Address, error) {
	var addr Address
	err := c.api.Post(ctx, fmt.Sprintf("/addresses/customer/%d", customerID), draft, &addr)
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}
	return &addr, nil
}

func (c *Client) Update(ctx context.Context, addressID int64, draft Draft) (*Address, error) {
	var addr Address
	err := c.api.Put(ctx, fmt.Sprintf("/addresses/%d", addressID), draft, &addr)
	if err != nil {
		return nil, fmt.Errorf("update address %d: %w", addressID, err)
	}
	return &addr, nil
}

func (c *Client) Delete(ctx context.Context, addressID int64) error {
	if err := c.api.Delete(ctx, fmt.Sprintf("/addresses/%d", addressID)); err != nil {
		return fmt.Errorf("delete address %d: %w", addressID, err)
	}
	return nil
}

func (c *Client) SetDefault(ctx context.Context, addressID int64) (*Address, error) {
	var addr Address
	err := c.api.Patch(ctx, fmt.Sprintf("/addresses/%d/default", addressID), nil, &addr)
	if err != nil {
		return nil, fmt.Errorf("set default address %d: %w", addressID, err)
	}
	return &addr, nil
}

func (c *Client) ByType(ctx context.Context, customerID int64, addrType Type) ([]Address, error) {
	var addresses []Address
	path := fmt.Sprintf("/addresses/customer/%d/type/%s", customerID, addrType)
	if err := c.api.GetList(ctx, path, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (c *Client) Exists(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := c.api.Get(ctx, fmt.Sprintf("/addresses/customer/%d/exists", customerID), &exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
