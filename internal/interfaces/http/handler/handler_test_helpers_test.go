package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	catalogapp "github.com/edusabi/mobileFacul/internal/application/catalog"
	saleapp "github.com/edusabi/mobileFacul/internal/application/sale"
	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/infrastructure/printing"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/middleware"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockSaleStore implements sale.Store for testing
type MockSaleStore struct {
	mock.Mock
}

func (m *MockSaleStore) ListCustomers(ctx context.Context) ([]catalog.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Customer), args.Error(1)
}

func (m *MockSaleStore) ListProducts(ctx context.Context) ([]catalog.ProductRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.ProductRecord), args.Error(1)
}

func (m *MockSaleStore) GetCustomer(ctx context.Context, id int64) (*catalog.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Customer), args.Error(1)
}

func (m *MockSaleStore) GetProduct(ctx context.Context, id int64) (*catalog.ProductRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ProductRecord), args.Error(1)
}

func (m *MockSaleStore) InsertSale(ctx context.Context, header sale.SaleHeader) (*sale.Sale, error) {
	args := m.Called(ctx, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleStore) InsertLineItems(ctx context.Context, items []sale.LineItemRecord) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockSaleStore) QueryComposed(ctx context.Context, saleID int64) (*sale.ComposedRecord, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.ComposedRecord), args.Error(1)
}

func testCustomers() []catalog.Customer {
	return []catalog.Customer{
		{ID: 1, Name: "Ana Souza", TaxID: "111.222.333-44", Address: "Rua A, 10", Phone: "(81) 90000-0001"},
		{ID: 2, Name: "Bruno Lima", TaxID: "555.666.777-88"},
	}
}

func testProductRecords() []catalog.ProductRecord {
	cost := "20.00"
	return []catalog.ProductRecord{
		{ID: 10, Name: "Sela Australiana", Price: "1250.00", Cost: &cost, Stock: 3},
		{ID: 11, Name: "Cabresto", Price: "35.90", Stock: 12},
		{ID: 12, Name: "Espora", Price: "abc", Stock: 1},
	}
}

func persistedSale(id int64) *sale.Sale {
	return &sale.Sale{
		ID:            id,
		Number:        "000041",
		CustomerID:    1,
		Seller:        "Raimundo",
		PaymentMethod: "PIX",
		Subtotal:      decimal.RequireFromString("1250.00"),
		Total:         decimal.RequireFromString("1250.00"),
		CreatedAt:     time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC),
	}
}

func composedRecord(id int64) *sale.ComposedRecord {
	name := "Sela Australiana"
	customer := testCustomers()[0]
	return &sale.ComposedRecord{
		Header:   *persistedSale(id),
		Customer: &customer,
		Lines: []sale.ComposedLine{{
			LineItemRecord: sale.LineItemRecord{
				SaleID:    id,
				ProductID: 10,
				Quantity:  1,
				UnitValue: decimal.RequireFromString("1250.00"),
				Total:     decimal.RequireFromString("1250.00"),
			},
			ProductName: &name,
		}},
	}
}

// failingSink renders nothing and fails every delivery
type failingSink struct{}

func (failingSink) RenderDocument(context.Context, *receipt.Document) (*printing.Artifact, error) {
	return nil, printing.NewRenderError(printing.ErrCodeRenderFailed, "browser unavailable", nil)
}

func (failingSink) Share(context.Context, *printing.Artifact, string, string) (*printing.ShareResult, error) {
	return nil, nil
}

type fakeArtifacts map[string]string

func (f fakeArtifacts) Get(_ context.Context, key string) (io.ReadCloser, error) {
	content, ok := f[key]
	if !ok {
		return nil, printing.NewRenderError(printing.ErrCodeNotFound, "artifact not found", nil)
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

type testAPIOptions struct {
	sink          saleapp.DocumentSink
	artifacts     ArtifactReader
	checkoutGuard gin.HandlerFunc
	checks        []HealthCheck
}

type testAPI struct {
	engine   *gin.Engine
	store    *MockSaleStore
	catalog  *catalogapp.Cache
	sessions *saleapp.SessionService
}

// newTestAPI builds the API over a mocked store whose catalog has already been loaded
func newTestAPI(t *testing.T, store *MockSaleStore, opts testAPIOptions) *testAPI {
	t.Helper()

	cache := catalogapp.NewCache(store, catalogapp.WithCallTimeout(time.Second))
	_, _ = cache.Load(context.Background())

	digits := receipt.DigitSourceFunc(func(int) int { return 7 })
	generator := receipt.NewGenerator(receipt.DefaultStoreProfile(),
		receipt.WithDigitSource(digits),
		receipt.WithLocation(time.UTC))

	var composerOpts []saleapp.ComposerOption
	if opts.sink != nil {
		composerOpts = append(composerOpts, saleapp.WithDocumentSink(opts.sink))
	}
	composer := saleapp.NewComposer(store, generator, cache.ProductName,
		saleapp.ComposerConfig{CallTimeout: time.Second}, composerOpts...)
	sessions := saleapp.NewSessionService(cache, composer, sale.ZeroQuantityKeep, zap.NewNop())

	templates := printing.NewTemplateEngine()
	receipts := saleapp.NewReceiptService(store, nil, generator, cache.ProductName,
		templates, printing.NewSink(templates, nil, nil, zap.NewNop()), time.Second, zap.NewNop())

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := API{
		Catalog:       NewCatalogHandler(cache),
		Sessions:      NewSessionHandler(sessions),
		Receipts:      NewReceiptHandler(receipts, opts.artifacts),
		System:        NewSystemHandler("pos-test", "0.0.1", sessions, opts.checks...),
		CheckoutGuard: opts.checkoutGuard,
	}
	api.Mount(router.NewRouter(engine))

	return &testAPI{engine: engine, store: store, catalog: cache, sessions: sessions}
}

// newLoadedStore returns a store mock that serves the test catalog
func newLoadedStore() *MockSaleStore {
	store := new(MockSaleStore)
	store.On("ListCustomers", mock.Anything).Return(testCustomers(), nil)
	store.On("ListProducts", mock.Anything).Return(testProductRecords(), nil)
	return store
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

// sessionPath creates a session and returns its API path
func (a *testAPI) sessionPath(t *testing.T) string {
	t.Helper()
	w, env := a.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decodeData[saleapp.SessionView](t, env)
	return "/api/v1/sessions/" + view.ID.String()
}
