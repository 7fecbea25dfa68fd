package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func echo(body string) gin.HandlerFunc {
	return func(c *gin.Context) { c.String(http.StatusOK, body) }
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

// sessionGroup mirrors the shape of the sale session routes
func sessionGroup() *DomainGroup {
	g := NewDomainGroup("sessions", "/sessions")
	g.POST("", echo("create")).
		GET("/:id", echo("get")).
		DELETE("/:id", echo("delete")).
		PUT("/:id/customer", echo("select-customer")).
		POST("/:id/checkout", echo("checkout"))
	g.Group("items", "/:id/items").
		POST("", echo("add-item")).
		PATCH("/:itemId", echo("update-item")).
		DELETE("/:itemId", echo("remove-item"))
	return g
}

func TestNewRouter_Defaults(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouter_MountsGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)
	r.Register(sessionGroup()).Setup()

	tests := []struct {
		method, target, want string
	}{
		{http.MethodPost, "/api/v1/sessions", "create"},
		{http.MethodGet, "/api/v1/sessions/s1", "get"},
		{http.MethodDelete, "/api/v1/sessions/s1", "delete"},
		{http.MethodPut, "/api/v1/sessions/s1/customer", "select-customer"},
		{http.MethodPost, "/api/v1/sessions/s1/checkout", "checkout"},
		{http.MethodPost, "/api/v1/sessions/s1/items", "add-item"},
		{http.MethodPatch, "/api/v1/sessions/s1/items/i9", "update-item"},
		{http.MethodDelete, "/api/v1/sessions/s1/items/i9", "remove-item"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			w := serve(engine, tt.method, tt.target)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/sessions/s1").Code)
}

func TestRouter_Routes(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", echo("ok"))
	r := NewRouter(engine)
	r.Register(sessionGroup()).Setup()

	routes := r.Routes()
	require.Len(t, routes, 8)

	var paths []string
	for _, rt := range routes {
		paths = append(paths, rt.Method+" "+rt.Path)
	}
	sort.Strings(paths)
	assert.Contains(t, paths, "PATCH /api/v1/sessions/:id/items/:itemId")
	assert.NotContains(t, paths, "GET /health")
}

func TestRouter_MiddlewareOrder(t *testing.T) {
	engine := gin.New()
	var order []string
	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			order = append(order, name)
			c.Next()
		}
	}

	g := NewDomainGroup("sales", "/sales").Use(mark("group"))
	g.GET("/:id/receipt", mark("handler"))
	g.Group("artifacts", "/artifacts").Use(mark("child")).GET("/*key", mark("download"))

	r := NewRouter(engine).Use(mark("api"))
	r.Register(g).Setup()

	serve(engine, http.MethodGet, "/api/v1/sales/7/receipt")
	assert.Equal(t, []string{"api", "group", "handler"}, order)

	order = nil
	serve(engine, http.MethodGet, "/api/v1/sales/artifacts/receipts/2026/01/7.pdf")
	assert.Equal(t, []string{"api", "group", "child", "download"}, order)
}

func TestRouter_MultipleGroups(t *testing.T) {
	engine := gin.New()
	catalog := NewDomainGroup("catalog", "").
		GET("/customers", echo("customers")).
		GET("/products", echo("products"))
	system := NewDomainGroup("system", "/system").GET("/ping", echo("pong"))

	NewRouter(engine).Register(catalog).Register(system).Setup()

	assert.Equal(t, "customers", serve(engine, http.MethodGet, "/api/v1/customers").Body.String())
	assert.Equal(t, "products", serve(engine, http.MethodGet, "/api/v1/products").Body.String())
	assert.Equal(t, "pong", serve(engine, http.MethodGet, "/api/v1/system/ping").Body.String())
}

func TestDomainGroup_Accessors(t *testing.T) {
	g := sessionGroup()
	assert.Equal(t, "sessions", g.Name())
	assert.Equal(t, "/sessions", g.Prefix())
	assert.Equal(t, 8, g.RouteCount())
	require.Len(t, g.children, 1)
	assert.Equal(t, 3, g.children[0].RouteCount())
}
