package address

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/RanjithMathi/freshto-gateway/internal/backend"
)

// Store caches the address book per customer. The backend stays
// authoritative: every mutation goes remote first and then reloads the
// cache, never mutating it optimistically.
type Store struct {
	svc Service

	mu         sync.RWMutex
	byCustomer map[int64][]Address
	defaults   map[int64]int64 // customer -> default address ID
	sfg        singleflight.Group
}

func NewStore(svc Service) *Store {
	return &Store{
		svc:        svc,
		byCustomer: make(map[int64][]Address),
		defaults:   make(map[int64]int64),
	}
}

// Load fetches the customer's addresses and replaces the local cache.
// A backend 404 means "no addresses yet" and resolves to an empty list;
// any other failure propagates. Concurrent loads for the same customer
// are collapsed into one request.
func (s *Store) Load(ctx context.Context, customerID int64) ([]Address, error) {
	v, err, _ := s.sfg.Do(fmt.Sprint(customerID), func() (interface{}, error) {
		addresses, err := s.svc.ByCustomer(ctx, customerID)
		if err != nil {
			if errors.Is(err, backend.ErrNotFound) {
				addresses = nil
			} else {
				return nil, err
			}
		}

		s.mu.Lock()
		s.byCustomer[customerID] = addresses
		delete(s.defaults, customerID)
		for _, a := range addresses {
			if a.IsDefault {
				s.defaults[customerID] = a.ID
				break
			}
		}
		if _, ok := s.defaults[customerID]; !ok && len(addresses) > 0 {
			s.defaults[customerID] = addresses[0].ID
		}
		s.mu.Unlock()

		return addresses, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Address), nil
}

func (s *Store) Add(ctx context.Context, customerID int64, draft Draft) (*Address, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	created, err := s.svc.Create(ctx, customerID, draft)
	if err != nil {
		return nil, err
	}
	if _, err := s.Load(ctx, customerID); err != nil {
		return nil, fmt.Errorf("resync after add: %w", err)
	}
	return created, nil
}

func (s *Store) Update(ctx context.Context, customerID, addressID int64, draft Draft) (*Address, error) {
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}
	updated, err := s.svc.Update(ctx, addressID, draft)
	if err != nil {
		return nil, err
	}
	if _, err := s.Load(ctx, customerID); err != nil {
		return nil, fmt.Errorf("resync after update: %w", err)
	}
	return updated, nil
}

func (s *Store) Remove(ctx context.Context, customerID, addressID int64) error {
	if err := s.svc.Delete(ctx, addressID); err != nil {
		return err
	}
	if _, err := s.Load(ctx, customerID); err != nil {
		return fmt.Errorf("resync after remove: %w", err)
	}
	return nil
}

func (s *Store) SetDefault(ctx context.Context, customerID, addressID int64) error {
	if _, err := s.svc.SetDefault(ctx, addressID); err != nil {
		return err
	}
	if _, err := s.Load(ctx, customerID); err != nil {
		return fmt.Errorf("resync after set default: %w", err)
	}
	return nil
}

// Addresses returns the cached address list for a customer.
func (s *Store) Addresses(customerID int64) []Address {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cached := s.byCustomer[customerID]
	out := make([]Address, len(cached))
	copy(out, cached)
	return out
}

// Default returns the selected default: the address flagged isDefault,
// else the first address, else none.
func (s *Store) Default(customerID int64) (Address, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.defaults[customerID]
	if !ok {
		return Address{}, false
	}
	for _, a := range s.byCustomer[customerID] {
		if a.ID == id {
			return a, true
		}
	}
	return Address{}, false
}

// Has reports whether the cached address book contains the given address.
func (s *Store) Has(customerID, addressID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.byCustomer[customerID] {
		if a.ID == addressID {
			return true
		}
	}
	return false
}

// ByType hits the backend directly; type-filtered views are not cached.
func (s *Store) ByType(ctx context.Context, customerID int64, addrType Type) ([]Address, error) {
	addresses, err := s.svc.ByType(ctx, customerID, addrType)
	if errors.Is(err, backend.ErrNotFound) {
		return nil, nil
	}
	return addresses, err
}

// HasAddresses asks the backend whether the customer has saved any address.
func (s *Store) HasAddresses(ctx context.Context, customerID int64) (bool, error) {
	exists, err := s.svc.Exists(ctx, customerID)
	if errors.Is(err, backend.ErrNotFound) {
		return false, nil
	}
	return exists, err
}
