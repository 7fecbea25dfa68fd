package sale

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// historySize bounds the per-session list of completed sales
const historySize = 20

// SaleSummary is a completed sale kept in the session history
type SaleSummary struct {
	SaleID       int64           `json:"sale_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total" swaggertype:"string" example:"91.80"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Session owns one cart, the selected customer and the last checkout state.
// Cart mutations are serialized by the session mutex; a checkout in flight
// blocks both a second checkout and further cart edits.
type Session struct {
	id        uuid.UUID
	createdAt time.Time

	busy atomic.Bool

	mu        sync.Mutex
	cart      *sale.Cart
	customer  *catalog.Customer
	lastState sale.CheckoutState
	history   []SaleSummary
	updatedAt time.Time
}

// NewSession creates an empty session
func NewSession(policy sale.ZeroQuantityPolicy) *Session {
	now := time.Now()
	return &Session{
		id:        uuid.New(),
		createdAt: now,
		updatedAt: now,
		cart:      sale.NewCart(policy),
		lastState: sale.CheckoutStateIdle,
	}
}

// ID returns the session id
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Busy reports whether a checkout is running
func (s *Session) Busy() bool {
	return s.busy.Load()
}

func (s *Session) lock() (func(), error) {
	s.mu.Lock()
	if s.busy.Load() {
		s.mu.Unlock()
		return nil, sale.ErrCheckoutInProgress
	}
	return func() {
		s.updatedAt = time.Now()
		s.mu.Unlock()
	}, nil
}

// SelectCustomer sets the buyer of the next checkout
func (s *Session) SelectCustomer(c *catalog.Customer) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	if c == nil {
		s.customer = nil
		return nil
	}
	cu := *c
	s.customer = &cu
	return nil
}

// ClearCustomer resets the selected customer
func (s *Session) ClearCustomer() error {
	return s.SelectCustomer(nil)
}

// AddItem adds quantity units of product to the cart
func (s *Session) AddItem(product *catalog.Product, quantity int) (*sale.CartItem, error) {
	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return s.cart.AddItem(product, quantity)
}

// UpdateQuantity sets a line quantity from raw user input
func (s *Session) UpdateQuantity(itemID uuid.UUID, raw string) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.cart.UpdateQuantity(itemID, raw)
	return nil
}

// RemoveItem removes a cart line
func (s *Session) RemoveItem(itemID uuid.UUID) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()
	s.cart.RemoveItem(itemID)
	return nil
}

// Checkout runs the composer over the current cart. On DONE the cart is
// cleared and the customer reset before the receipt is delivered, so a
// delivery failure never loses the sale. Any other outcome leaves the
// session untouched.
func (s *Session) Checkout(ctx context.Context, composer *Composer, seller, paymentMethod string) (*Outcome, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, sale.ErrCheckoutInProgress
	}
	defer s.busy.Store(false)

	s.mu.Lock()
	req := CheckoutRequest{
		Lines:         s.cart.Items(),
		Seller:        seller,
		PaymentMethod: paymentMethod,
	}
	if s.customer != nil {
		cu := *s.customer
		req.Customer = &cu
	}
	s.mu.Unlock()

	out, err := composer.Checkout(ctx, req)

	s.mu.Lock()
	s.lastState = out.State
	if out.State == sale.CheckoutStateDone {
		s.cart.Clear()
		s.customer = nil
		s.remember(out)
	}
	s.updatedAt = time.Now()
	s.mu.Unlock()

	if err != nil {
		return out, err
	}

	delivery, err := composer.Deliver(ctx, out.Document)
	out.Delivery = delivery
	return out, err
}

func (s *Session) remember(out *Outcome) {
	summary := SaleSummary{
		SaleID:    out.Projection.SaleID,
		Total:     out.Projection.Total,
		CreatedAt: out.Projection.IssuedAt,
	}
	if out.Projection.Customer != nil {
		summary.CustomerName = out.Projection.Customer.Name
	}
	s.history = append([]SaleSummary{summary}, s.history...)
	if len(s.history) > historySize {
		s.history = s.history[:historySize]
	}
}

// SessionView is a point-in-time copy of a session
type SessionView struct {
	ID            uuid.UUID          `json:"id" swaggertype:"string" format:"uuid"`
	Customer      *catalog.Customer  `json:"customer,omitempty"`
	Items         []sale.CartItem    `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal" swaggertype:"string" example:"91.80"`
	Total         decimal.Decimal    `json:"total" swaggertype:"string" example:"91.80"`
	TotalQuantity int                `json:"total_quantity"`
	Policy        string             `json:"zero_quantity_policy"`
	LastState     sale.CheckoutState `json:"last_checkout_state"`
	Busy          bool               `json:"busy"`
	History       []SaleSummary      `json:"history"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// View returns a copy of the session state
func (s *Session) View() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := SessionView{
		ID:            s.id,
		Items:         s.cart.Items(),
		Subtotal:      s.cart.Subtotal(),
		Total:         s.cart.Total(),
		TotalQuantity: s.cart.TotalQuantity(),
		Policy:        string(s.cart.Policy()),
		LastState:     s.lastState,
		Busy:          s.busy.Load(),
		History:       append([]SaleSummary(nil), s.history...),
		CreatedAt:     s.createdAt,
		UpdatedAt:     s.updatedAt,
	}
	if s.customer != nil {
		cu := *s.customer
		v.Customer = &cu
	}
	return v
}

func (s *Session) lastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
