package order

import (
	"fmt"
	"time"
)

// Status values are owned by the backend; the gateway only reads them.
type Status string

const (
	StatusConfirmed      Status = "CONFIRMED"
	StatusPacked         Status = "PACKED"
	StatusShipped        Status = "SHIPPED"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

func (s Status) String() string { return string(s) }

func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusConfirmed, StatusPacked, StatusShipped,
		StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return Status(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

type Item struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type Order struct {
	ID                  int64     `json:"id"`
	CustomerID          int64     `json:"customerId"`
	AddressID           int64     `json:"addressId"`
	Items               []Item    `json:"orderItems"`
	DeliverySlot        string    `json:"deliverySlot"`
	PaymentMethod       string    `json:"paymentMethod"`
	SpecialInstructions string    `json:"specialInstructions,omitempty"`
	Status              Status    `json:"status"`
	TotalAmount         float64   `json:"totalAmount"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty"`
}

// CreateRequest is the checkout submission payload.
type CreateRequest struct {
	CustomerID          int64  `json:"customerId"`
	AddressID           int64  `json:"addressId"`
	DeliverySlot        string `json:"deliverySlot"`
	PaymentMethod       string `json:"paymentMethod"`
	SpecialInstructions string `json:"specialInstructions"`
	OrderItems          []Item `json:"orderItems"`
}
