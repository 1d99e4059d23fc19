package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RanjithMathi/freshto-gateway/internal/address"
	"github.com/RanjithMathi/freshto-gateway/internal/cart"
	"github.com/RanjithMathi/freshto-gateway/internal/order"
)

// CartStore is the slice of the cart the checkout flow needs.
type CartStore interface {
	Lines(customerID int64) []cart.Line
	Clear(customerID int64) cart.Notice
}

// AddressBook answers whether an address selection is legal.
type AddressBook interface {
	Addresses(customerID int64) []address.Address
	Has(customerID, addressID int64) bool
}

// OrderPlacer submits the finished checkout to the order service.
type OrderPlacer interface {
	Create(ctx context.Context, req *order.CreateRequest) (*order.Order, error)
}

// OrderLog records successfully placed orders.
type OrderLog interface {
	Record(o *order.Order)
}

// Session is a snapshot of one customer's checkout progression.
type Session struct {
	ID            string              `json:"id"`
	CustomerID    int64               `json:"customerId"`
	Stage         Stage               `json:"stage"`
	AddressID     int64               `json:"addressId,omitempty"`
	Slot          *Slot               `json:"slot,omitempty"`
	PaymentMethod PaymentMethod       `json:"paymentMethod,omitempty"`
	Instructions  string              `json:"specialInstructions,omitempty"`
	Totals        *Totals             `json:"totals,omitempty"`
	Order         *order.Order        `json:"order,omitempty"`
	LastError     string              `json:"lastError,omitempty"`
	payload       *order.CreateRequest
}

// Manager owns one checkout session per customer and enforces the legal
// transitions between stages.
type Manager struct {
	cart      CartStore
	addresses AddressBook
	placer    OrderPlacer
	log       OrderLog
	pricing   PricingRule
	now       func() time.Time

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewManager(cartStore CartStore, addresses AddressBook, placer OrderPlacer, log OrderLog) *Manager {
	return &Manager{
		cart:      cartStore,
		addresses: addresses,
		placer:    placer,
		log:       log,
		pricing:   DefaultPricing(),
		now:       time.Now,
		sessions:  make(map[int64]*Session),
	}
}

// Slots returns the current delivery slot menu.
func (m *Manager) Slots() []Slot {
	return Menu(m.now())
}

// Session returns a snapshot of the customer's checkout, starting one at
// CartReview if none exists yet.
func (m *Manager) Session(customerID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.ensure(customerID)
}

// SelectAddress is a pure selection with no side effect. It requires a
// non-empty address book; an empty one routes the app to address creation.
func (m *Manager) SelectAddress(customerID, addressID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	if s.Stage != StageCartReview && s.Stage != StageAddressSelected {
		return IllegalTransitionError
	}
	if len(m.addresses.Addresses(customerID)) == 0 {
		return ErrNoAddresses
	}
	if !m.addresses.Has(customerID, addressID) {
		return ErrUnknownAddress
	}

	s.AddressID = addressID
	s.Stage = StageAddressSelected
	return nil
}

// SelectSlot picks a delivery slot from the fixed menu. Slots marked
// unavailable are not selectable.
func (m *Manager) SelectSlot(customerID int64, slotID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	if s.Stage != StageAddressSelected && s.Stage != StageSlotSelected {
		return IllegalTransitionError
	}

	slot, ok := findSlot(Menu(m.now()), slotID)
	if !ok {
		return ErrUnknownSlot
	}
	if !slot.Available {
		return ErrSlotUnavailable
	}

	s.Slot = &slot
	s.Stage = StageSlotSelected
	return nil
}

func (m *Manager) SelectPayment(customerID int64, method PaymentMethod) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	if s.Stage != StageSlotSelected && s.Stage != StageSummaryReviewed {
		return IllegalTransitionError
	}

	s.PaymentMethod = method
	return nil
}

// SetInstructions attaches optional delivery instructions. They ride
// along with the order payload at placement time.
func (m *Manager) SetInstructions(customerID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	switch s.Stage {
	case StageCartReview, StageAddressSelected, StageSlotSelected, StageSummaryReviewed:
	default:
		return IllegalTransitionError
	}
	s.Instructions = text
	return nil
}

// ReviewSummary recomputes the order totals from the live cart. Totals
// are never cached stale: reviewing again recomputes.
func (m *Manager) ReviewSummary(customerID int64) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	if s.Stage != StageSlotSelected && s.Stage != StageSummaryReviewed {
		return Totals{}, IllegalTransitionError
	}

	lines := m.cart.Lines(customerID)
	if len(lines) == 0 {
		return Totals{}, ErrEmptyCart
	}

	totals := ComputeTotals(lines, m.pricing)
	s.Totals = &totals
	s.Stage = StageSummaryReviewed
	return totals, nil
}

// Place submits the checkout. On success the cart is cleared and the
// ephemeral slot/payment selections are discarded; on failure the payload
// is kept so the user can retry it unchanged.
func (m *Manager) Place(ctx context.Context, customerID int64) (*order.Order, error) {
	m.mu.Lock()

	s := m.ensure(customerID)
	if s.Stage != StageSummaryReviewed {
		m.mu.Unlock()
		return nil, IllegalTransitionError
	}
	if s.PaymentMethod == "" {
		m.mu.Unlock()
		return nil, ErrNoPaymentMethod
	}

	lines := m.cart.Lines(customerID)
	if len(lines) == 0 {
		m.mu.Unlock()
		return nil, ErrEmptyCart
	}

	items := make([]order.Item, len(lines))
	for i, l := range lines {
		items[i] = order.Item{ProductID: l.ProductID, Quantity: l.Quantity}
	}
	s.payload = &order.CreateRequest{
		CustomerID:          customerID,
		AddressID:           s.AddressID,
		DeliverySlot:        s.Slot.Display(),
		PaymentMethod:       string(s.PaymentMethod),
		SpecialInstructions: s.Instructions,
		OrderItems:          items,
	}

	return m.submit(ctx, s)
}

// Retry re-submits the exact payload of the failed attempt. Retries are
// always user-triggered, never automatic.
func (m *Manager) Retry(ctx context.Context, customerID int64) (*order.Order, error) {
	m.mu.Lock()

	s := m.ensure(customerID)
	if s.Stage != StageFailed || s.payload == nil {
		m.mu.Unlock()
		return nil, IllegalTransitionError
	}

	return m.submit(ctx, s)
}

// submit is entered holding the lock, which it releases for the duration
// of the network call. The Placing stage blocks concurrent submissions.
func (m *Manager) submit(ctx context.Context, s *Session) (*order.Order, error) {
	s.Stage = StagePlacing
	s.LastError = ""
	payload := s.payload
	customerID := s.CustomerID
	m.mu.Unlock()

	placed, err := m.placer.Create(ctx, payload)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		s.Stage = StageFailed
		s.LastError = err.Error()
		return nil, err
	}

	m.log.Record(placed)
	m.cart.Clear(customerID)

	s.Order = placed
	s.Slot = nil
	s.PaymentMethod = ""
	s.Instructions = ""
	s.payload = nil
	s.Stage = StagePlaced
	return placed, nil
}

// Back cancels out of the flow before placement, discarding the ephemeral
// slot and payment selections with no side effects.
func (m *Manager) Back(customerID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.ensure(customerID)
	switch s.Stage {
	case StageCartReview, StageAddressSelected, StageSlotSelected, StageSummaryReviewed, StageFailed:
	default:
		return IllegalTransitionError
	}

	s.Slot = nil
	s.PaymentMethod = ""
	s.Instructions = ""
	s.Totals = nil
	s.payload = nil
	s.LastError = ""
	s.Stage = StageCartReview
	return nil
}

// Reset drops the session entirely, e.g. after the app leaves checkout.
func (m *Manager) Reset(customerID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, customerID)
}

func (m *Manager) ensure(customerID int64) *Session {
	s, ok := m.sessions[customerID]
	if !ok {
		s = &Session{
			ID:         uuid.NewString(),
			CustomerID: customerID,
			Stage:      StageCartReview,
		}
		m.sessions[customerID] = s
	}
	return s
}
