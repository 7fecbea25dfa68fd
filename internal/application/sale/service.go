package sale

import (
	"context"
	"sync"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Lookup errors. They share the NOT_FOUND code so errors.Is(err, shared.ErrNotFound) holds.
var (
	ErrSessionNotFound  = shared.NewDomainError("NOT_FOUND", "Session not found")
	ErrCustomerNotFound = shared.NewDomainError("NOT_FOUND", "Customer not found")
	ErrProductNotFound  = shared.NewDomainError("NOT_FOUND", "Product not found")
)

// SessionService keeps the open sessions and runs cart operations on them
type SessionService struct {
	catalog  CatalogLookup
	composer *Composer
	policy   sale.ZeroQuantityPolicy
	logger   *zap.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewSessionService creates a SessionService
func NewSessionService(lookup CatalogLookup, composer *Composer, policy sale.ZeroQuantityPolicy, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		catalog:  lookup,
		composer: composer,
		policy:   policy,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create opens a new session
func (s *SessionService) Create() SessionView {
	session := NewSession(s.policy)
	s.mu.Lock()
	s.sessions[session.ID()] = session
	s.mu.Unlock()
	s.logger.Debug("session opened", zap.String("session_id", session.ID().String()))
	return session.View()
}

// Get returns a session by id
func (s *SessionService) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// View returns the current state of a session
func (s *SessionService) View(id uuid.UUID) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// Delete discards a session. A session with a checkout in flight is kept.
func (s *SessionService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if session.Busy() {
		return sale.ErrCheckoutInProgress
	}
	delete(s.sessions, id)
	return nil
}

// SweepIdle discards idle sessions not touched since before cutoff and returns how many were removed
func (s *SessionService) SweepIdle(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.Busy() || !session.lastTouched().Before(cutoff) {
			continue
		}
		delete(s.sessions, id)
		removed++
	}
	if removed > 0 {
		s.logger.Info("idle sessions discarded", zap.Int("count", removed))
	}
	return removed
}

// Len returns the number of open sessions
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// SelectCustomer sets the customer of a session from the catalog
func (s *SessionService) SelectCustomer(id uuid.UUID, customerID int64) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	customer, ok := s.catalog.Customer(customerID)
	if !ok {
		return SessionView{}, ErrCustomerNotFound
	}
	if err := session.SelectCustomer(customer); err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// ClearCustomer resets the customer of a session
func (s *SessionService) ClearCustomer(id uuid.UUID) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.ClearCustomer(); err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// AddItem adds a catalog product to the session cart. A zero product id means
// no product was selected.
func (s *SessionService) AddItem(id uuid.UUID, productID int64, quantity int) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	if productID == 0 {
		return SessionView{}, sale.ErrNoProductSelected
	}
	product, ok := s.catalog.Product(productID)
	if !ok {
		return SessionView{}, ErrProductNotFound
	}
	if _, err := session.AddItem(product, quantity); err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// UpdateQuantity edits a line quantity from raw input
func (s *SessionService) UpdateQuantity(id, itemID uuid.UUID, raw string) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.UpdateQuantity(itemID, raw); err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// RemoveItem removes a cart line
func (s *SessionService) RemoveItem(id, itemID uuid.UUID) (SessionView, error) {
	session, err := s.Get(id)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.RemoveItem(itemID); err != nil {
		return SessionView{}, err
	}
	return session.View(), nil
}

// Checkout finishes the sale of a session
func (s *SessionService) Checkout(ctx context.Context, id uuid.UUID, req CheckoutInput) (*Outcome, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Checkout(ctx, s.composer, req.Seller, req.PaymentMethod)
}
