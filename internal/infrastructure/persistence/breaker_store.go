package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerStateObserver is told about every breaker state change.
// state is 0 for closed, 1 for half-open and 2 for open.
type BreakerStateObserver interface {
	BreakerStateChanged(name string, state int)
}

// BreakerConfig configures a BreakerStore
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold uint32
	Observer         BreakerStateObserver
	Logger           *zap.Logger
}

// BreakerStore guards a sale.Store with a circuit breaker. While the breaker
// is open calls fail fast with gobreaker.ErrOpenState and the checkout maps
// that to the failure of the step that attempted the call.
type BreakerStore struct {
	next sale.Store
	cb   *gobreaker.CircuitBreaker[any]
}

var _ sale.Store = (*BreakerStore)(nil)

// NewBreakerStore wraps next
func NewBreakerStore(next sale.Store, cfg BreakerConfig) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = "sale-store"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	threshold := cfg.FailureThreshold
	observer := cfg.Observer

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: isStoreSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("store circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
			if observer != nil {
				observer.BreakerStateChanged(name, int(to))
			}
		},
	}
	return &BreakerStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

// isStoreSuccess keeps lookups of unknown ids and caller cancellations from
// tripping the breaker; only store faults count.
func isStoreSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, shared.ErrNotFound) ||
		errors.Is(err, context.Canceled)
}

// State returns the current breaker state
func (s *BreakerStore) State() gobreaker.State {
	return s.cb.State()
}

func execute[T any](s *BreakerStore, fn func() (T, error)) (T, error) {
	res, err := s.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// ListCustomers implements catalog.Reader
func (s *BreakerStore) ListCustomers(ctx context.Context) ([]catalog.Customer, error) {
	return execute(s, func() ([]catalog.Customer, error) { return s.next.ListCustomers(ctx) })
}

// ListProducts implements catalog.Reader
func (s *BreakerStore) ListProducts(ctx context.Context) ([]catalog.ProductRecord, error) {
	return execute(s, func() ([]catalog.ProductRecord, error) { return s.next.ListProducts(ctx) })
}

// GetCustomer implements sale.Store
func (s *BreakerStore) GetCustomer(ctx context.Context, id int64) (*catalog.Customer, error) {
	return execute(s, func() (*catalog.Customer, error) { return s.next.GetCustomer(ctx, id) })
}

// GetProduct implements sale.Store
func (s *BreakerStore) GetProduct(ctx context.Context, id int64) (*catalog.ProductRecord, error) {
	return execute(s, func() (*catalog.ProductRecord, error) { return s.next.GetProduct(ctx, id) })
}

// InsertSale implements sale.Store
func (s *BreakerStore) InsertSale(ctx context.Context, header sale.SaleHeader) (*sale.Sale, error) {
	return execute(s, func() (*sale.Sale, error) { return s.next.InsertSale(ctx, header) })
}

// InsertLineItems implements sale.Store
func (s *BreakerStore) InsertLineItems(ctx context.Context, items []sale.LineItemRecord) error {
	_, err := execute(s, func() (struct{}, error) { return struct{}{}, s.next.InsertLineItems(ctx, items) })
	return err
}

// QueryComposed implements sale.Store
func (s *BreakerStore) QueryComposed(ctx context.Context, saleID int64) (*sale.ComposedRecord, error) {
	return execute(s, func() (*sale.ComposedRecord, error) { return s.next.QueryComposed(ctx, saleID) })
}
