package sale

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory sale.Store with injectable failures
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	sales    map[int64]sale.Sale
	items    map[int64][]sale.LineItemRecord
	products map[int64]catalog.ProductRecord

	headerErr   error
	itemsErr    error
	composedErr error
	// headerGate, when set, holds InsertSale until it is closed or the call context ends
	headerGate    chan struct{}
	headerEntered chan struct{}

	headerCalls   int
	itemsCalls    int
	composedCalls int
}

func newMemStore() *memStore {
	return &memStore{
		nextID: 100,
		sales:  make(map[int64]sale.Sale),
		items:  make(map[int64][]sale.LineItemRecord),
		products: map[int64]catalog.ProductRecord{
			10: {ID: 10, Name: "Sela", Price: "200.00"},
			11: {ID: 11, Name: "Cabresto", Price: "45.50"},
		},
	}
}

func (s *memStore) ListCustomers(context.Context) ([]catalog.Customer, error) {
	return testCustomers(), nil
}

func (s *memStore) ListProducts(context.Context) ([]catalog.ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.ProductRecord, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *memStore) GetCustomer(_ context.Context, id int64) (*catalog.Customer, error) {
	for _, c := range testCustomers() {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *memStore) GetProduct(_ context.Context, id int64) (*catalog.ProductRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (s *memStore) InsertSale(ctx context.Context, header sale.SaleHeader) (*sale.Sale, error) {
	s.mu.Lock()
	s.headerCalls++
	gate, entered := s.headerGate, s.headerEntered
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.headerErr != nil {
		return nil, s.headerErr
	}
	s.nextID++
	persisted := sale.Sale{
		ID:            s.nextID,
		Number:        "000" + decimal.NewFromInt(s.nextID).String(),
		CustomerID:    header.CustomerID,
		Seller:        header.Seller,
		PaymentMethod: header.PaymentMethod,
		Subtotal:      header.Subtotal,
		Total:         header.Total,
		CreatedAt:     time.Date(2026, 3, 2, 13, 4, 5, 0, time.UTC),
	}
	s.sales[persisted.ID] = persisted
	return &persisted, nil
}

func (s *memStore) InsertLineItems(_ context.Context, items []sale.LineItemRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemsCalls++
	if s.itemsErr != nil {
		return s.itemsErr
	}
	for _, it := range items {
		s.items[it.SaleID] = append(s.items[it.SaleID], it)
	}
	return nil
}

func (s *memStore) QueryComposed(_ context.Context, saleID int64) (*sale.ComposedRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composedCalls++
	if s.composedErr != nil {
		return nil, s.composedErr
	}
	header, ok := s.sales[saleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	rec := &sale.ComposedRecord{Header: header}
	for _, c := range testCustomers() {
		if c.ID == header.CustomerID {
			cu := c
			rec.Customer = &cu
		}
	}
	for _, it := range s.items[saleID] {
		line := sale.ComposedLine{LineItemRecord: it}
		if p, ok := s.products[it.ProductID]; ok {
			name := p.Name
			line.ProductName = &name
		}
		rec.Lines = append(rec.Lines, line)
	}
	return rec, nil
}

func testCustomers() []catalog.Customer {
	return []catalog.Customer{
		{ID: 1, Name: "Ana Souza", TaxID: "111.222.333-44"},
		{ID: 2, Name: "Bruno Lima", TaxID: "555.666.777-88"},
	}
}

// staticCatalog is a fixed CatalogLookup
type staticCatalog struct {
	customers map[int64]catalog.Customer
	products  map[int64]catalog.Product
}

func newStaticCatalog() *staticCatalog {
	c := &staticCatalog{
		customers: make(map[int64]catalog.Customer),
		products: map[int64]catalog.Product{
			10: {ID: 10, Name: "Sela", Price: decimal.RequireFromString("200.00")},
			11: {ID: 11, Name: "Cabresto", Price: decimal.RequireFromString("45.50")},
		},
	}
	for _, cu := range testCustomers() {
		c.customers[cu.ID] = cu
	}
	return c
}

func (c *staticCatalog) Customer(id int64) (*catalog.Customer, bool) {
	cu, ok := c.customers[id]
	return &cu, ok
}

func (c *staticCatalog) Product(id int64) (*catalog.Product, bool) {
	p, ok := c.products[id]
	return &p, ok
}

func (c *staticCatalog) ProductName(id int64) (string, bool) {
	p, ok := c.products[id]
	return p.Name, ok
}

func (c *staticCatalog) product(id int64) *catalog.Product {
	p, _ := c.Product(id)
	return p
}

func (c *staticCatalog) customer(id int64) *catalog.Customer {
	cu, _ := c.Customer(id)
	return cu
}

// memCache is a ProjectionCache over a map
type memCache struct {
	mu      sync.Mutex
	entries map[int64]sale.Projection
	getErr  error
	puts    int
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[int64]sale.Projection)}
}

func (c *memCache) Put(_ context.Context, p *sale.Projection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[p.SaleID] = *p
	return nil
}

func (c *memCache) Get(_ context.Context, saleID int64) (*sale.Projection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	p, ok := c.entries[saleID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

// stubSink records delivered documents
type stubSink struct {
	renderErr error
	rendered  []int64
	titles    []string
}

func (s *stubSink) RenderDocument(_ context.Context, doc *receipt.Document) (*printing.Artifact, error) {
	if s.renderErr != nil {
		return nil, s.renderErr
	}
	s.rendered = append(s.rendered, doc.SaleID)
	return &printing.Artifact{ID: uuid.New(), SaleID: doc.SaleID, PDF: []byte("%PDF"), CreatedAt: time.Now()}, nil
}

func (s *stubSink) Share(_ context.Context, a *printing.Artifact, contentType, title string) (*printing.ShareResult, error) {
	s.titles = append(s.titles, title)
	return &printing.ShareResult{
		Key:         printing.ArtifactKey(a, ".pdf"),
		URL:         "https://receipts.example/" + a.ID.String(),
		Title:       title,
		ContentType: contentType,
		Size:        int64(len(a.PDF)),
	}, nil
}

type finishedCheckout struct {
	state sale.CheckoutState
	total decimal.Decimal
}

// recordingObserver keeps every checkout measurement
type recordingObserver struct {
	mu       sync.Mutex
	finished []finishedCheckout
	steps    map[string]int
	failed   map[string]int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{steps: make(map[string]int), failed: make(map[string]int)}
}

func (o *recordingObserver) CheckoutFinished(state sale.CheckoutState, total decimal.Decimal, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, finishedCheckout{state, total})
}

func (o *recordingObserver) CheckoutStep(step string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps[step]++
	if err != nil {
		o.failed[step]++
	}
}

func fixedGenerator() *receipt.Generator {
	return receipt.NewGenerator(receipt.DefaultStoreProfile(),
		receipt.WithDigitSource(receipt.DigitSourceFunc(func(int) int { return 3 })),
		receipt.WithLocation(time.UTC))
}

// cartLines builds checkout lines through a real cart
func cartLines(cat *staticCatalog, quantities map[int64]int) []sale.CartItem {
	cart := sale.NewCart(sale.ZeroQuantityKeep)
	for _, id := range []int64{10, 11} {
		q, ok := quantities[id]
		if !ok {
			continue
		}
		item, err := cart.AddItem(cat.product(id), 1)
		if err != nil {
			panic(err)
		}
		cart.SetQuantity(item.ID, q)
	}
	return cart.Items()
}

var errStoreDown = errors.New("store unreachable")
