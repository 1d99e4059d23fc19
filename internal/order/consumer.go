package order

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// StatusEvent is the payload the backend publishes when an order moves
// through its fulfilment pipeline.
type StatusEvent struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	Status     string    `json:"status"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type messageSource interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer keeps the cached order history in step with server-driven
// status transitions.
type Consumer struct {
	store  *Store
	reader messageSource
}

func NewConsumer(store *Store, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "order-status",
		GroupID:  "freshto-gateway",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{store: store, reader: reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	msg, err := c.reader.FetchMessage(ctx)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("failed to fetch status message: %v", err)
		}
		return
	}

	var event StatusEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Printf("malformed status event at offset %d: %v", msg.Offset, err)
		c.commit(ctx, msg) // skip poison messages
		return
	}

	status, err := ParseStatus(event.Status)
	if err != nil {
		log.Printf("status event for order %d rejected: %v", event.OrderID, err)
		c.commit(ctx, msg)
		return
	}

	at := event.UpdatedAt
	if at.IsZero() {
		at = time.Now()
	}
	if !c.store.ApplyStatus(event.OrderID, status, at) {
		log.Printf("status event for unknown order %d (customer %d), will catch up on next refresh", event.OrderID, event.CustomerID)
	}

	c.commit(ctx, msg)
}

func (c *Consumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Printf("failed to commit offset %d: %v", msg.Offset, err)
	}
}
