package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultCallTimeout bounds each remote fetch when no timeout is configured
const DefaultCallTimeout = 10 * time.Second

// RejectedProduct is a product excluded from the cache because its stored data is unusable
type RejectedProduct struct {
	ID     int64  `json:"id"`
	Name   string `json:"nome"`
	Reason string `json:"reason"`
}

// Snapshot is the content of the cache after a load
type Snapshot struct {
	Customers []catalog.Customer `json:"customers"`
	Products  []catalog.Product  `json:"products"`
	Rejected  []RejectedProduct  `json:"rejected,omitempty"`
	LoadedAt  time.Time          `json:"loaded_at"`
}

// LoadObserver is notified after every load
type LoadObserver interface {
	CatalogLoaded(customers, products, rejected int, err error)
}

// CacheOption configures a Cache
type CacheOption func(*Cache)

// WithCallTimeout sets the timeout applied to each fetch
func WithCallTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver sets the load observer
func WithObserver(o LoadObserver) CacheOption {
	return func(c *Cache) {
		c.observer = o
	}
}

// Cache is a session-scoped, read-only view of customers and products.
// Reads are safe for concurrent use; Load replaces the whole content.
type Cache struct {
	reader   catalog.Reader
	timeout  time.Duration
	logger   *zap.Logger
	observer LoadObserver

	mu            sync.RWMutex
	snap          Snapshot
	customerIndex map[int64]int
	productIndex  map[int64]int
}

// NewCache creates an empty cache backed by reader
func NewCache(reader catalog.Reader, opts ...CacheOption) *Cache {
	c := &Cache{
		reader:        reader,
		timeout:       DefaultCallTimeout,
		logger:        zap.NewNop(),
		customerIndex: map[int64]int{},
		productIndex:  map[int64]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches customers and products concurrently. Each entity is handled on its
// own: a failed fetch leaves that list empty while the other is still populated,
// and the returned error (matching sale.ErrDataUnavailable) names what failed.
func (c *Cache) Load(ctx context.Context) (*Snapshot, error) {
	var (
		customers   []catalog.Customer
		records     []catalog.ProductRecord
		customerErr error
		productErr  error
		g           errgroup.Group
	)

	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		customers, customerErr = c.reader.ListCustomers(callCtx)
		if customerErr != nil {
			customerErr = fmt.Errorf("clientes: %w", customerErr)
		}
		return customerErr
	})
	g.Go(func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		records, productErr = c.reader.ListProducts(callCtx)
		if productErr != nil {
			productErr = fmt.Errorf("produtos: %w", productErr)
		}
		return productErr
	})
	_ = g.Wait()

	snap := Snapshot{
		Customers: make([]catalog.Customer, 0, len(customers)),
		Products:  make([]catalog.Product, 0, len(records)),
		LoadedAt:  time.Now(),
	}
	if customerErr != nil {
		c.logger.Error("failed to load customers", zap.Error(customerErr))
	} else {
		snap.Customers = append(snap.Customers, customers...)
	}
	if productErr != nil {
		c.logger.Error("failed to load products", zap.Error(productErr))
	} else {
		for _, rec := range records {
			p, err := rec.ToProduct()
			if err != nil {
				c.logger.Warn("product rejected",
					zap.Int64("product_id", rec.ID),
					zap.String("price", rec.Price),
					zap.Error(err))
				snap.Rejected = append(snap.Rejected, RejectedProduct{ID: rec.ID, Name: rec.Name, Reason: err.Error()})
				continue
			}
			snap.Products = append(snap.Products, *p)
		}
	}

	c.replace(snap)

	var err error
	if loadErr := errors.Join(customerErr, productErr); loadErr != nil {
		err = shared.WrapDomainError(sale.ErrDataUnavailable, loadErr)
	}
	if c.observer != nil {
		c.observer.CatalogLoaded(len(snap.Customers), len(snap.Products), len(snap.Rejected), err)
	}

	c.logger.Info("catalog loaded",
		zap.Int("customers", len(snap.Customers)),
		zap.Int("products", len(snap.Products)),
		zap.Int("rejected", len(snap.Rejected)))

	out := c.Snapshot()
	return &out, err
}

func (c *Cache) replace(snap Snapshot) {
	customerIndex := make(map[int64]int, len(snap.Customers))
	for i, cu := range snap.Customers {
		customerIndex[cu.ID] = i
	}
	productIndex := make(map[int64]int, len(snap.Products))
	for i, p := range snap.Products {
		productIndex[p.ID] = i
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snap = snap
	c.customerIndex = customerIndex
	c.productIndex = productIndex
}

// Snapshot returns a copy of the current content
func (c *Cache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Customers: append([]catalog.Customer(nil), c.snap.Customers...),
		Products:  append([]catalog.Product(nil), c.snap.Products...),
		Rejected:  append([]RejectedProduct(nil), c.snap.Rejected...),
		LoadedAt:  c.snap.LoadedAt,
	}
}

// FilterCustomers returns customers whose name contains query (case-insensitive)
// or whose tax id contains it, in cache order. An empty query returns all.
func (c *Cache) FilterCustomers(query string) []catalog.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]catalog.Customer, 0, len(c.snap.Customers))
	for _, cu := range c.snap.Customers {
		if cu.Matches(query) {
			out = append(out, cu)
		}
	}
	return out
}

// Customers returns all cached customers
func (c *Cache) Customers() []catalog.Customer {
	return c.FilterCustomers("")
}

// Products returns all cached products
func (c *Cache) Products() []catalog.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]catalog.Product(nil), c.snap.Products...)
}

// Customer looks up a customer by id
func (c *Cache) Customer(id int64) (*catalog.Customer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.customerIndex[id]
	if !ok {
		return nil, false
	}
	cu := c.snap.Customers[idx]
	return &cu, true
}

// Product looks up a product by id
func (c *Cache) Product(id int64) (*catalog.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx, ok := c.productIndex[id]
	if !ok {
		return nil, false
	}
	p := c.snap.Products[idx]
	return &p, true
}

// ProductName resolves a product name by id
func (c *Cache) ProductName(id int64) (string, bool) {
	p, ok := c.Product(id)
	if !ok {
		return "", false
	}
	return p.Name, true
}
