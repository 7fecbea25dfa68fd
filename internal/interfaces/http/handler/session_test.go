package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	saleapp "github.com/edusabi/mobileFacul/internal/application/sale"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_Lifecycle(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})
	path := api.sessionPath(t)

	w, env := api.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeData[saleapp.SessionView](t, env)
	assert.Empty(t, view.Items)
	assert.Equal(t, sale.CheckoutStateIdle, view.LastState)
	assert.Equal(t, "keep", view.Policy)

	w, _ = api.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = api.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ERR_NOT_FOUND", env.Error.Code)
}

func TestSessionHandler_InvalidSessionID(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})

	w, env := api.do(t, http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
}

func TestSessionHandler_SelectCustomer(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})
	path := api.sessionPath(t)

	t.Run("known customer", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, path+"/customer", map[string]any{"cliente_id": 2})
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeData[saleapp.SessionView](t, env)
		require.NotNil(t, view.Customer)
		assert.Equal(t, "Bruno Lima", view.Customer.Name)
	})

	t.Run("unknown customer", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, path+"/customer", map[string]any{"cliente_id": 99})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Customer not found", env.Error.Message)
	})

	t.Run("missing id", func(t *testing.T) {
		w, env := api.do(t, http.MethodPut, path+"/customer", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotEmpty(t, env.Error.Details)
		assert.Equal(t, "cliente_id", env.Error.Details[0].Field)
	})

	t.Run("clear", func(t *testing.T) {
		w, env := api.do(t, http.MethodDelete, path+"/customer", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, decodeData[saleapp.SessionView](t, env).Customer)
	})
}

func TestSessionHandler_CartEdits(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})
	path := api.sessionPath(t)

	w, env := api.do(t, http.MethodPost, path+"/items", map[string]any{"produto_id": 11, "quantidade": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	view := decodeData[saleapp.SessionView](t, env)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "71.8", view.Total.String())

	// same product again merges into the line
	_, env = api.do(t, http.MethodPost, path+"/items", map[string]any{"produto_id": 11, "quantidade": 1})
	view = decodeData[saleapp.SessionView](t, env)
	require.Len(t, view.Items, 1)
	assert.Equal(t, 3, view.Items[0].Quantity)
	itemPath := path + "/items/" + view.Items[0].ID.String()

	t.Run("quantity from raw text", func(t *testing.T) {
		w, env := api.do(t, http.MethodPatch, itemPath, map[string]any{"quantidade": "5"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, decodeData[saleapp.SessionView](t, env).Items[0].Quantity)
	})

	t.Run("non numeric text becomes zero and the line is kept", func(t *testing.T) {
		w, env := api.do(t, http.MethodPatch, itemPath, map[string]any{"quantidade": "abc"})
		require.Equal(t, http.StatusOK, w.Code)
		view := decodeData[saleapp.SessionView](t, env)
		require.Len(t, view.Items, 1)
		assert.Equal(t, 0, view.Items[0].Quantity)
		assert.True(t, view.Total.IsZero())
	})

	t.Run("invalid item id", func(t *testing.T) {
		w, _ := api.do(t, http.MethodPatch, path+"/items/xyz", map[string]any{"quantidade": "1"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("remove", func(t *testing.T) {
		w, env := api.do(t, http.MethodDelete, itemPath, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeData[saleapp.SessionView](t, env).Items)
	})
}

func TestSessionHandler_AddItemErrors(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})
	path := api.sessionPath(t)

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
		wantCode   string
	}{
		{"zero quantity", map[string]any{"produto_id": 10, "quantidade": 0}, http.StatusUnprocessableEntity, "ERR_INVALID_QUANTITY"},
		{"negative quantity", map[string]any{"produto_id": 10, "quantidade": -3}, http.StatusUnprocessableEntity, "ERR_INVALID_QUANTITY"},
		{"no product", map[string]any{"quantidade": 1}, http.StatusUnprocessableEntity, "ERR_NO_PRODUCT_SELECTED"},
		{"rejected product", map[string]any{"produto_id": 12, "quantidade": 1}, http.StatusNotFound, "ERR_NOT_FOUND"},
		{"malformed quantity", map[string]any{"produto_id": 10, "quantidade": "two"}, http.StatusBadRequest, "ERR_VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := api.do(t, http.MethodPost, path+"/items", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}

	_, env := api.do(t, http.MethodGet, path, nil)
	assert.Empty(t, decodeData[saleapp.SessionView](t, env).Items, "rejected additions leave the cart untouched")
}

// fillSession selects customer 1 and adds one unit of product 10
func fillSession(t *testing.T, api *testAPI) string {
	t.Helper()
	path := api.sessionPath(t)
	w, _ := api.do(t, http.MethodPut, path+"/customer", map[string]any{"cliente_id": 1})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodPost, path+"/items", map[string]any{"produto_id": 10, "quantidade": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	return path
}

func TestSessionHandler_Checkout(t *testing.T) {
	store := newLoadedStore()
	store.On("InsertSale", mock.Anything, mock.MatchedBy(func(h sale.SaleHeader) bool {
		return h.CustomerID == 1 && h.Seller == "Maria" && h.PaymentMethod == "PIX" && h.Total.String() == "1250"
	})).Return(persistedSale(41), nil).Once()
	store.On("InsertLineItems", mock.Anything, mock.MatchedBy(func(items []sale.LineItemRecord) bool {
		return len(items) == 1 && items[0].SaleID == 41 && items[0].ProductID == 10
	})).Return(nil).Once()
	store.On("QueryComposed", mock.Anything, int64(41)).Return(composedRecord(41), nil).Once()

	api := newTestAPI(t, store, testAPIOptions{})
	path := fillSession(t, api)

	w, env := api.do(t, http.MethodPost, path+"/checkout", map[string]any{"vendedor": "Maria"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeData[CheckoutResponse](t, env)
	require.NotNil(t, resp.Outcome)
	assert.Equal(t, sale.CheckoutStateDone, resp.State)
	assert.Equal(t, []sale.CheckoutState{
		sale.CheckoutStateIdle, sale.CheckoutStateValidating, sale.CheckoutStateHeaderPersisted,
		sale.CheckoutStateItemsPersisted, sale.CheckoutStateComposed, sale.CheckoutStateDone,
	}, resp.Trail)
	assert.Equal(t, int64(41), resp.Sale.ID)
	require.NotNil(t, resp.Document)
	assert.Equal(t, int64(41), resp.Document.SaleID)
	assert.Nil(t, resp.Warning)

	_, env = api.do(t, http.MethodGet, path, nil)
	view := decodeData[saleapp.SessionView](t, env)
	assert.Empty(t, view.Items)
	assert.Nil(t, view.Customer)
	assert.Equal(t, sale.CheckoutStateDone, view.LastState)
	require.Len(t, view.History, 1)
	assert.Equal(t, int64(41), view.History[0].SaleID)

	store.AssertExpectations(t)
}

func TestSessionHandler_CheckoutValidation(t *testing.T) {
	store := newLoadedStore()
	api := newTestAPI(t, store, testAPIOptions{})
	path := api.sessionPath(t)

	w, env := api.do(t, http.MethodPost, path+"/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ERR_NO_CUSTOMER_SELECTED", env.Error.Code)
	resp := decodeData[CheckoutResponse](t, env)
	assert.Equal(t, sale.CheckoutStateValidationFailed, resp.State)

	api.do(t, http.MethodPut, path+"/customer", map[string]any{"cliente_id": 1})
	w, env = api.do(t, http.MethodPost, path+"/checkout", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "ERR_EMPTY_CART", env.Error.Code)

	store.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)
}

func TestSessionHandler_CheckoutOverrideTooLong(t *testing.T) {
	store := newLoadedStore()
	api := newTestAPI(t, store, testAPIOptions{})
	path := fillSession(t, api)

	tests := []struct {
		name  string
		body  map[string]any
		field string
	}{
		{"payment method", map[string]any{"forma_pagamento": strings.Repeat("P", 31)}, "forma_pagamento"},
		{"seller", map[string]any{"vendedor": strings.Repeat("V", 101)}, "vendedor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := api.do(t, http.MethodPost, path+"/checkout", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ERR_VALIDATION", env.Error.Code)
			require.Len(t, env.Error.Details, 1)
			assert.Equal(t, tt.field, env.Error.Details[0].Field)
		})
	}

	store.AssertNotCalled(t, "InsertSale", mock.Anything, mock.Anything)

	_, env := api.do(t, http.MethodGet, path, nil)
	view := decodeData[saleapp.SessionView](t, env)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, sale.CheckoutStateIdle, view.LastState)
}

func TestSessionHandler_CheckoutWriteFailures(t *testing.T) {
	t.Run("header write", func(t *testing.T) {
		store := newLoadedStore()
		store.On("InsertSale", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
		api := newTestAPI(t, store, testAPIOptions{})
		path := fillSession(t, api)

		w, env := api.do(t, http.MethodPost, path+"/checkout", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "ERR_HEADER_WRITE_FAILED", env.Error.Code)
		resp := decodeData[CheckoutResponse](t, env)
		assert.Equal(t, sale.CheckoutStateHeaderWriteFailed, resp.State)
		assert.Nil(t, resp.Sale)

		_, env = api.do(t, http.MethodGet, path, nil)
		assert.Len(t, decodeData[saleapp.SessionView](t, env).Items, 1, "the cart survives a failed checkout")
	})

	t.Run("items write leaves an orphan header", func(t *testing.T) {
		store := newLoadedStore()
		store.On("InsertSale", mock.Anything, mock.Anything).Return(persistedSale(77), nil)
		store.On("InsertLineItems", mock.Anything, mock.Anything).Return(errors.New("constraint violation"))
		api := newTestAPI(t, store, testAPIOptions{})
		path := fillSession(t, api)

		w, env := api.do(t, http.MethodPost, path+"/checkout", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "ERR_ITEMS_WRITE_FAILED", env.Error.Code)
		resp := decodeData[CheckoutResponse](t, env)
		assert.Equal(t, sale.CheckoutStateItemsWriteFailed, resp.State)
		assert.True(t, resp.Orphaned)
		require.NotNil(t, resp.Sale)
		assert.Equal(t, int64(77), resp.Sale.ID)
		store.AssertNotCalled(t, "QueryComposed", mock.Anything, mock.Anything)
	})

	t.Run("composed read falls back to the cart", func(t *testing.T) {
		store := newLoadedStore()
		store.On("InsertSale", mock.Anything, mock.Anything).Return(persistedSale(78), nil)
		store.On("InsertLineItems", mock.Anything, mock.Anything).Return(nil)
		store.On("QueryComposed", mock.Anything, int64(78)).Return(nil, errors.New("view missing"))
		api := newTestAPI(t, store, testAPIOptions{})
		path := fillSession(t, api)

		w, env := api.do(t, http.MethodPost, path+"/checkout", nil)
		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeData[CheckoutResponse](t, env)
		assert.Equal(t, sale.CheckoutStateDone, resp.State)
		assert.True(t, resp.ComposedFromCart)
		require.NotNil(t, resp.Projection)
		assert.Equal(t, "Sela Australiana", resp.Projection.Lines[0].ProductName)
	})
}

func TestSessionHandler_CheckoutDeliveryWarning(t *testing.T) {
	store := newLoadedStore()
	store.On("InsertSale", mock.Anything, mock.Anything).Return(persistedSale(90), nil)
	store.On("InsertLineItems", mock.Anything, mock.Anything).Return(nil)
	store.On("QueryComposed", mock.Anything, int64(90)).Return(composedRecord(90), nil)
	api := newTestAPI(t, store, testAPIOptions{sink: failingSink{}})
	path := fillSession(t, api)

	w, env := api.do(t, http.MethodPost, path+"/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeData[CheckoutResponse](t, env)
	assert.Equal(t, sale.CheckoutStateDone, resp.State)
	require.NotNil(t, resp.Warning)
	assert.Equal(t, "ERR_DOCUMENT_RENDER_FAILED", resp.Warning.Code)
	assert.Nil(t, resp.Delivery)

	_, env = api.do(t, http.MethodGet, path, nil)
	assert.Empty(t, decodeData[saleapp.SessionView](t, env).Items, "the sale is registered despite the delivery failure")
}

func TestSessionHandler_CheckoutGuard(t *testing.T) {
	guard := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false})
	}
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{checkoutGuard: guard})
	path := api.sessionPath(t)

	w, _ := api.do(t, http.MethodPost, path+"/checkout", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// other session routes are not guarded
	w, _ = api.do(t, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionHandler_UnknownSession(t *testing.T) {
	api := newTestAPI(t, newLoadedStore(), testAPIOptions{})
	path := "/api/v1/sessions/" + uuid.NewString()

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodDelete, path, nil},
		{http.MethodPost, path + "/items", map[string]any{"produto_id": 10, "quantidade": 1}},
		{http.MethodPost, path + "/checkout", nil},
	} {
		w, env := api.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
		assert.Equal(t, "Session not found", env.Error.Message)
	}
}
