package cache

import (
	"context"
	"sync"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
)

const memoryCleanupInterval = 5 * time.Minute

type memoryEntry struct {
	projection sale.Projection
	expiresAt  time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryProjectionCache keeps projections in a process-local map.
// It suits single-instance deployments and tests.
type MemoryProjectionCache struct {
	mu        sync.RWMutex
	entries   map[int64]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewMemoryProjectionCache creates the cache and starts its cleanup goroutine.
// A non-positive ttl keeps projections until Close.
func NewMemoryProjectionCache(ttl time.Duration) *MemoryProjectionCache {
	c := &MemoryProjectionCache{
		entries:  make(map[int64]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Put stores a copy of p
func (c *MemoryProjectionCache) Put(_ context.Context, p *sale.Projection) error {
	if p == nil {
		return shared.ErrInvalidInput
	}
	e := memoryEntry{projection: cloneProjection(p)}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[p.SaleID] = e
	c.mu.Unlock()
	return nil
}

// Get returns a copy of the projection of saleID or shared.ErrNotFound
func (c *MemoryProjectionCache) Get(_ context.Context, saleID int64) (*sale.Projection, error) {
	c.mu.RLock()
	e, ok := c.entries[saleID]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		return nil, shared.ErrNotFound
	}
	p := cloneProjection(&e.projection)
	return &p, nil
}

// Delete removes the projection of saleID
func (c *MemoryProjectionCache) Delete(_ context.Context, saleID int64) error {
	c.mu.Lock()
	delete(c.entries, saleID)
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (c *MemoryProjectionCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of entries, expired ones included
func (c *MemoryProjectionCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryProjectionCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(memoryCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *MemoryProjectionCache) cleanup() {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, id)
		}
	}
}

func cloneProjection(p *sale.Projection) sale.Projection {
	out := *p
	if p.Customer != nil {
		customer := *p.Customer
		out.Customer = &customer
	}
	out.Lines = append([]sale.ProjectionLine(nil), p.Lines...)
	return out
}

var _ ProjectionCache = (*MemoryProjectionCache)(nil)
