package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails InsertSale while failing is set
type flakyStore struct {
	sale.Store
	mu      sync.Mutex
	failing bool
	calls   int
}

func (f *flakyStore) InsertSale(_ context.Context, h sale.SaleHeader) (*sale.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failing {
		return nil, errors.New("store unavailable")
	}
	return &sale.Sale{ID: 1, CustomerID: h.CustomerID}, nil
}

func (f *flakyStore) GetCustomer(_ context.Context, _ int64) (*catalog.Customer, error) {
	return nil, shared.ErrNotFound
}

func (f *flakyStore) InsertLineItems(_ context.Context, _ []sale.LineItemRecord) error {
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	states []int
}

func (r *recordingObserver) BreakerStateChanged(_ string, state int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakyStore{failing: true}
	obs := &recordingObserver{}
	store := NewBreakerStore(next, BreakerConfig{
		FailureThreshold: 2,
		Timeout:          50 * time.Millisecond,
		Observer:         obs,
	})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := store.InsertSale(ctx, sale.SaleHeader{CustomerID: 1})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, store.State())

	_, err := store.InsertSale(ctx, sale.SaleHeader{CustomerID: 1})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls, "open breaker must not reach the store")

	next.mu.Lock()
	next.failing = false
	next.mu.Unlock()

	require.Eventually(t, func() bool {
		return store.State() == gobreaker.StateHalfOpen
	}, time.Second, 10*time.Millisecond)

	created, err := store.InsertSale(ctx, sale.SaleHeader{CustomerID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, gobreaker.StateClosed, store.State())

	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.Equal(t, []int{2, 1, 0}, obs.states)
}

func TestBreakerStore_NotFoundDoesNotTrip(t *testing.T) {
	store := NewBreakerStore(&flakyStore{}, BreakerConfig{FailureThreshold: 1})

	for i := 0; i < 3; i++ {
		_, err := store.GetCustomer(context.Background(), 7)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, store.State())
}

func TestBreakerStore_VoidCall(t *testing.T) {
	store := NewBreakerStore(&flakyStore{}, BreakerConfig{})
	assert.NoError(t, store.InsertLineItems(context.Background(), nil))
}
