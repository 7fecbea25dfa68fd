package handler

import (
	"github.com/edusabi/mobileFacul/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// API groups the handlers mounted under the versioned API prefix
type API struct {
	Catalog  *CatalogHandler
	Sessions *SessionHandler
	Receipts *ReceiptHandler
	System   *SystemHandler
	// CheckoutGuard runs before the checkout handler when set
	CheckoutGuard gin.HandlerFunc
}

// Groups returns the route groups of the API. Nil handlers are skipped.
func (a API) Groups() []*router.DomainGroup {
	var groups []*router.DomainGroup

	if a.Catalog != nil {
		catalog := router.NewDomainGroup("catalog", "")
		catalog.GET("/customers", a.Catalog.ListCustomers).
			GET("/products", a.Catalog.ListProducts).
			GET("/catalog", a.Catalog.Status).
			POST("/catalog/reload", a.Catalog.Reload)
		groups = append(groups, catalog)
	}

	if a.Sessions != nil {
		h := a.Sessions
		sessions := router.NewDomainGroup("sessions", "/sessions")
		sessions.POST("", h.Create).
			GET("/:id", h.Get).
			DELETE("/:id", h.Delete).
			PUT("/:id/customer", h.SelectCustomer).
			DELETE("/:id/customer", h.ClearCustomer)

		if a.CheckoutGuard != nil {
			sessions.POST("/:id/checkout", a.CheckoutGuard, h.Checkout)
		} else {
			sessions.POST("/:id/checkout", h.Checkout)
		}

		sessions.Group("items", "/:id/items").
			POST("", h.AddItem).
			PATCH("/:itemId", h.UpdateQuantity).
			DELETE("/:itemId", h.RemoveItem)
		groups = append(groups, sessions)
	}

	if a.Receipts != nil {
		sales := router.NewDomainGroup("sales", "/sales")
		sales.GET("/:id/receipt", a.Receipts.GetReceipt)
		artifacts := router.NewDomainGroup("artifacts", "/artifacts")
		artifacts.GET("/*key", a.Receipts.DownloadArtifact)
		groups = append(groups, sales, artifacts)
	}

	if a.System != nil {
		system := router.NewDomainGroup("system", "/system")
		system.GET("/info", a.System.GetSystemInfo).
			GET("/ping", a.System.Ping)
		groups = append(groups, system)
	}

	return groups
}

// Mount registers every group of the API on r and sets it up
func (a API) Mount(r *router.Router) {
	for _, g := range a.Groups() {
		r.Register(g)
	}
	r.Setup()
}
