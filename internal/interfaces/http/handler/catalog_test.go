package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_ListCustomers(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})

	t.Run("all customers", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/api/v1/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 2, env.Meta.Total)
	})

	t.Run("filtered by name", func(t *testing.T) {
		w, env := api.do(t, http.MethodGet, "/api/v1/customers?q=ANA", nil)
		require.Equal(t, http.StatusOK, w.Code)
		customers := decodeData[[]catalog.Customer](t, env)
		require.Len(t, customers, 1)
		assert.Equal(t, int64(1), customers[0].ID)
	})

	t.Run("filtered by tax id", func(t *testing.T) {
		_, env := api.do(t, http.MethodGet, "/api/v1/customers?q=555.666", nil)
		customers := decodeData[[]catalog.Customer](t, env)
		require.Len(t, customers, 1)
		assert.Equal(t, "Bruno Lima", customers[0].Name)
	})

	t.Run("no match", func(t *testing.T) {
		_, env := api.do(t, http.MethodGet, "/api/v1/customers?q=zzz", nil)
		assert.Equal(t, 0, env.Meta.Total)
	})
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})

	w, env := api.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	products := decodeData[[]catalog.Product](t, env)
	require.Len(t, products, 2, "the product with an unparseable price is not offered")
	assert.Equal(t, "Sela Australiana", products[0].Name)
	assert.Equal(t, "35.9", products[1].Price.String())
}

func TestCatalogHandler_Status(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})

	w, env := api.do(t, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	status := decodeData[CatalogStatus](t, env)
	assert.Equal(t, 2, status.Customers)
	assert.Equal(t, 2, status.Products)
	require.Len(t, status.Rejected, 1)
	assert.Equal(t, int64(12), status.Rejected[0].ID)
}

func TestCatalogHandler_Reload(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		store := newLoadedStore()
		api := newTestAPI(t, store, testAPIOptions{})

		w, env := api.do(t, http.MethodPost, "/api/v1/catalog/reload", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
		store.AssertNumberOfCalls(t, "ListCustomers", 2)
	})

	t.Run("partial load reports data unavailable", func(t *testing.T) {
		store := new(MockSaleStore)
		store.On("ListCustomers", mock.Anything).Return(testCustomers(), nil)
		store.On("ListProducts", mock.Anything).Return(testProductRecords(), nil).Once()
		store.On("ListProducts", mock.Anything).Return(nil, errors.New("connection refused"))
		api := newTestAPI(t, store, testAPIOptions{})

		w, env := api.do(t, http.MethodPost, "/api/v1/catalog/reload", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_DATA_UNAVAILABLE", env.Error.Code)
		assert.NotEmpty(t, env.Error.RequestID)

		status := decodeData[CatalogStatus](t, env)
		assert.Equal(t, 2, status.Customers)
		assert.Equal(t, 0, status.Products)

		// the failed entity stays empty in the cache
		_, env = api.do(t, http.MethodGet, "/api/v1/products", nil)
		assert.Equal(t, 0, env.Meta.Total)
	})
}
