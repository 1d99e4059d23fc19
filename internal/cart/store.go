package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/RanjithMathi/freshto-gateway/internal/catalog"
	"github.com/RanjithMathi/freshto-gateway/internal/money"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Store holds per-customer carts in memory for the lifetime of the process.
// Carts are deliberately not durable: they live for the session and are
// cleared on order placement or an explicit clear.
type Store struct {
	mu     sync.Mutex
	carts  map[int64][]Line
	notify func(customerID int64, n Notice)
}

func NewStore() *Store {
	return &Store{carts: make(map[int64][]Line)}
}

// SetNotifier registers a listener for transient cart notifications.
func (s *Store) SetNotifier(fn func(customerID int64, n Notice)) {
	s.notify = fn
}

// AddItem merges by product ID: an existing line has its quantity bumped,
// otherwise a new line is appended.
func (s *Store) AddItem(customerID int64, product catalog.Product, quantity int) (Notice, error) {
	if quantity <= 0 {
		return Notice{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].ProductID == product.ID {
			lines[i].Quantity += quantity
			return s.emit(customerID, Notice{
				Message: fmt.Sprintf("%s quantity updated!", product.Title),
				Type:    NoticeSuccess,
			}), nil
		}
	}

	s.carts[customerID] = append(lines, Line{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Quantity:  quantity,
	})
	return s.emit(customerID, Notice{
		Message: fmt.Sprintf("%s added to cart!", product.Title),
		Type:    NoticeSuccess,
	}), nil
}

// SetQuantity replaces a line's quantity. A quantity of zero or below
// removes the line, exactly like RemoveItem.
func (s *Store) SetQuantity(customerID, productID int64, quantity int) (Notice, error) {
	if quantity <= 0 {
		return s.RemoveItem(customerID, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return Notice{}, nil
		}
	}
	return Notice{}, nil
}

func (s *Store) RemoveItem(customerID, productID int64) (Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	for i := range lines {
		if lines[i].ProductID == productID {
			s.carts[customerID] = append(lines[:i], lines[i+1:]...)
			return s.emit(customerID, Notice{
				Message: "Item removed from cart",
				Type:    NoticeInfo,
			}), nil
		}
	}
	return Notice{}, nil
}

func (s *Store) Clear(customerID int64) Notice {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, customerID)
	return s.emit(customerID, Notice{Message: "Cart cleared", Type: NoticeInfo})
}

// Lines returns a copy of the customer's cart.
func (s *Store) Lines(customerID int64) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[customerID]
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}

// TotalLineCount is the number of distinct products in the cart.
func (s *Store) TotalLineCount(customerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts[customerID])
}

// TotalQuantity sums quantities across all lines.
func (s *Store) TotalQuantity(customerID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, l := range s.carts[customerID] {
		total += l.Quantity
	}
	return total
}

func (s *Store) Subtotal(customerID int64) money.Paise {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total money.Paise
	for _, l := range s.carts[customerID] {
		total += l.Total()
	}
	return total
}

func (s *Store) emit(customerID int64, n Notice) Notice {
	if s.notify != nil {
		s.notify(customerID, n)
	}
	return n
}
