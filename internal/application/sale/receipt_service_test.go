package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/receipt"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type htmlFunc func(doc *receipt.Document) ([]byte, error)

func (f htmlFunc) RenderHTML(doc *receipt.Document) ([]byte, error) { return f(doc) }

// seedSale persists a completed sale through the composer
func seedSale(t *testing.T, store *memStore) int64 {
	t.Helper()
	cat := newStaticCatalog()
	c := newTestComposer(store, cat)
	out, err := c.Checkout(context.Background(), CheckoutRequest{
		Customer: cat.customer(1),
		Lines:    cartLines(cat, map[int64]int{10: 1, 11: 2}),
	})
	require.NoError(t, err)
	store.composedCalls = 0
	return out.Sale.ID
}

func newTestReceiptService(store *memStore, cache ProjectionCache, html HTMLRenderer, sink DocumentSink) *ReceiptService {
	cat := newStaticCatalog()
	return NewReceiptService(store, cache, fixedGenerator(), cat.ProductName, html, sink, time.Second, nil)
}

func TestReceiptService_ProjectionCacheHit(t *testing.T) {
	store := newMemStore()
	cache := newMemCache()
	cache.entries[7] = sale.Projection{SaleID: 7, Number: "0007", Total: decimal.RequireFromString("10.00")}
	svc := newTestReceiptService(store, cache, nil, nil)

	p, err := svc.Projection(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "0007", p.Number)
	assert.Zero(t, store.composedCalls)
	assert.Zero(t, cache.puts)
}

func TestReceiptService_ProjectionCacheMissLoadsStore(t *testing.T) {
	store := newMemStore()
	id := seedSale(t, store)
	cache := newMemCache()
	svc := newTestReceiptService(store, cache, nil, nil)

	p, err := svc.Projection(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, p.SaleID)
	assert.Equal(t, "Ana Souza", p.Customer.Name)
	assert.Equal(t, "291.00", p.Total.StringFixed(2))
	assert.Equal(t, 1, store.composedCalls)
	assert.Equal(t, 1, cache.puts)

	_, err = svc.Projection(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, store.composedCalls, "second read is served by the cache")
}

func TestReceiptService_ProjectionCacheErrorFallsBackToStore(t *testing.T) {
	store := newMemStore()
	id := seedSale(t, store)
	cache := newMemCache()
	cache.getErr = errors.New("redis: connection refused")
	svc := newTestReceiptService(store, cache, nil, nil)

	p, err := svc.Projection(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, p.SaleID)
	assert.Equal(t, 1, store.composedCalls)
}

func TestReceiptService_ProjectionErrors(t *testing.T) {
	t.Run("unknown sale stays not found", func(t *testing.T) {
		svc := newTestReceiptService(newMemStore(), nil, nil, nil)
		_, err := svc.Projection(context.Background(), 404)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NotErrorIs(t, err, sale.ErrComposedReadFailed)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMemStore()
		store.composedErr = errStoreDown
		svc := newTestReceiptService(store, nil, nil, nil)
		_, err := svc.Projection(context.Background(), 1)
		assert.ErrorIs(t, err, sale.ErrComposedReadFailed)
		assert.ErrorIs(t, err, errStoreDown)
	})
}

func TestReceiptService_Regenerate(t *testing.T) {
	store := newMemStore()
	id := seedSale(t, store)
	svc := newTestReceiptService(store, nil, nil, nil)

	doc, err := svc.Regenerate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, doc.SaleID)
	assert.Len(t, doc.Items, 2)
}

func TestReceiptService_RegenerateHTML(t *testing.T) {
	store := newMemStore()
	id := seedSale(t, store)

	t.Run("renders", func(t *testing.T) {
		var got *receipt.Document
		svc := newTestReceiptService(store, nil, htmlFunc(func(doc *receipt.Document) ([]byte, error) {
			got = doc
			return []byte("<html>ok</html>"), nil
		}), nil)

		page, err := svc.RegenerateHTML(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "<html>ok</html>", string(page))
		require.NotNil(t, got)
		assert.Equal(t, id, got.SaleID)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := newTestReceiptService(store, nil, nil, nil)
		_, err := svc.RegenerateHTML(context.Background(), id)
		assert.ErrorIs(t, err, sale.ErrDocumentRenderFailed)
	})

	t.Run("template failure", func(t *testing.T) {
		svc := newTestReceiptService(store, nil, htmlFunc(func(*receipt.Document) ([]byte, error) {
			return nil, errors.New("template: missing field")
		}), nil)
		_, err := svc.RegenerateHTML(context.Background(), id)
		assert.ErrorIs(t, err, sale.ErrDocumentRenderFailed)
	})

	t.Run("unknown sale", func(t *testing.T) {
		svc := newTestReceiptService(store, nil, htmlFunc(func(*receipt.Document) ([]byte, error) {
			return []byte("x"), nil
		}), nil)
		_, err := svc.RegenerateHTML(context.Background(), 999)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReceiptService_RegeneratePDF(t *testing.T) {
	store := newMemStore()
	id := seedSale(t, store)

	t.Run("renders", func(t *testing.T) {
		sink := &stubSink{}
		svc := newTestReceiptService(store, nil, nil, sink)
		artifact, err := svc.RegeneratePDF(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, artifact.SaleID)
		assert.Equal(t, []int64{id}, sink.rendered)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := newTestReceiptService(store, nil, nil, nil)
		_, err := svc.RegeneratePDF(context.Background(), id)
		assert.ErrorIs(t, err, sale.ErrDocumentRenderFailed)
	})

	t.Run("render failure", func(t *testing.T) {
		svc := newTestReceiptService(store, nil, nil, &stubSink{renderErr: errors.New("chrome exited")})
		_, err := svc.RegeneratePDF(context.Background(), id)
		assert.ErrorIs(t, err, sale.ErrDocumentRenderFailed)
	})
}
