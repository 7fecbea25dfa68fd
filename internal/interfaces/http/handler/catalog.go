package handler

import (
	"context"
	"errors"
	"time"

	catalogapp "github.com/edusabi/mobileFacul/internal/application/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/catalog"
	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// CatalogCache is the catalog access used by the HTTP layer
type CatalogCache interface {
	Load(ctx context.Context) (*catalogapp.Snapshot, error)
	Snapshot() catalogapp.Snapshot
	FilterCustomers(query string) []catalog.Customer
	Products() []catalog.Product
}

// CatalogHandler serves the cached customers and products
type CatalogHandler struct {
	BaseHandler
	cache CatalogCache
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(cache CatalogCache) *CatalogHandler {
	return &CatalogHandler{cache: cache}
}

// CatalogStatus summarizes a catalog snapshot
type CatalogStatus struct {
	Customers int                          `json:"customers"`
	Products  int                          `json:"products"`
	Rejected  []catalogapp.RejectedProduct `json:"rejected,omitempty"`
	LoadedAt  time.Time                    `json:"loaded_at"`
}

func statusOf(s catalogapp.Snapshot) CatalogStatus {
	return CatalogStatus{
		Customers: len(s.Customers),
		Products:  len(s.Products),
		Rejected:  s.Rejected,
		LoadedAt:  s.LoadedAt,
	}
}

// ListCustomers godoc
// @Summary      List customers
// @Description  Returns the cached customers whose name contains q, ignoring case, or whose CPF contains q
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Name or CPF fragment" maxlength(100)
// @Success      200 {object} dto.Response{data=[]catalog.Customer,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /customers [get]
func (h *CatalogHandler) ListCustomers(c *gin.Context) {
	var query dto.CustomerQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}
	customers := h.cache.FilterCustomers(query.Q)
	h.List(c, customers, len(customers))
}

// ListProducts godoc
// @Summary      List products
// @Description  Returns the cached products. Products with unusable prices are not listed.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]catalog.Product,meta=dto.Meta}
// @Router       /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products := h.cache.Products()
	h.List(c, products, len(products))
}

// Status godoc
// @Summary      Catalog status
// @Description  Reports the size and age of the catalog cache and the rejected products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=CatalogStatus}
// @Router       /catalog [get]
func (h *CatalogHandler) Status(c *gin.Context) {
	h.Success(c, statusOf(h.cache.Snapshot()))
}

// Reload godoc
// @Summary      Reload the catalog
// @Description  Fetches customers and products again. A partial load still replaces the cache and answers DATA_UNAVAILABLE with the counts that did load.
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=CatalogStatus}
// @Failure      503 {object} dto.Response{data=CatalogStatus,error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/reload [post]
func (h *CatalogHandler) Reload(c *gin.Context) {
	snap, err := h.cache.Load(c.Request.Context())
	if err == nil {
		h.Success(c, statusOf(*snap))
		return
	}
	if snap != nil && errors.Is(err, sale.ErrDataUnavailable) {
		_ = c.Error(err)
		status, body := errorBody(c, err, statusOf(*snap))
		c.JSON(status, body)
		return
	}
	h.HandleError(c, err)
}
