package order

import (
	"sync"
	"time"
)

// Store caches finalized orders per customer, newest first. It is fed by
// successful placements, by list refreshes from the backend, and by the
// status consumer.
type Store struct {
	mu         sync.RWMutex
	byCustomer map[int64][]*Order
}

func NewStore() *Store {
	return &Store{byCustomer: make(map[int64][]*Order)}
}

// Record inserts a freshly placed order at the front of the customer's
// history, replacing any cached copy with the same ID.
func (s *Store) Record(o *Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cached := s.byCustomer[o.CustomerID]
	for i, existing := range cached {
		if existing.ID == o.ID {
			cached[i] = o
			return
		}
	}
	s.byCustomer[o.CustomerID] = append([]*Order{o}, cached...)
}

// ReplaceAll swaps in the authoritative list fetched from the backend.
func (s *Store) ReplaceAll(customerID int64, orders []*Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byCustomer[customerID] = orders
}

func (s *Store) ByCustomer(customerID int64) []*Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached := s.byCustomer[customerID]
	out := make([]*Order, len(cached))
	copy(out, cached)
	return out
}

func (s *Store) ByID(orderID int64) (*Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, orders := range s.byCustomer {
		for _, o := range orders {
			if o.ID == orderID {
				return o, true
			}
		}
	}
	return nil, false
}

// ApplyStatus applies a server-driven status transition to a cached order.
// Unknown orders are ignored; the next refresh will pick them up.
func (s *Store) ApplyStatus(orderID int64, status Status, at time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, orders := range s.byCustomer {
		for _, o := range orders {
			if o.ID == orderID {
				o.Status = status
				o.UpdatedAt = at
				return true
			}
		}
	}
	return false
}
