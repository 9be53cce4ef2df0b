package transport

import (
	"net/http"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/config"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Config     *config.Config
	Users      user.Service
	Categories category.Service
	Products   product.Service
	Carts      cart.Service
	Orders     order.Service
	Metrics    *metrics.Metrics
	Limiter    *middleware.Limiter
}

// NewRouter mounts the route groups of every service enabled in the config.
// Identity resolution is always available since cart and order routes need it.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.CORS(d.Config.CORSOrigins),
		middleware.Observe(d.Metrics),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	requireAuth := middleware.RequireAuth(d.Users)
	requireAdmin := middleware.RequireAdmin()

	if d.Config.Enabled(config.ServiceAuth) {
		h := &authHandler{users: d.Users, cookieTTL: d.Config.JWTExpiresIn, secureCookie: d.Config.AppEnv == "production"}
		r.POST("/signup", h.signup)
		r.POST("/login", h.login)
		r.GET("/me", requireAuth, h.me)
	}

	if d.Config.Enabled(config.ServiceCatalog) {
		h := &catalogHandler{categories: d.Categories, products: d.Products}
		r.GET("/categories", h.listCategories)
		r.POST("/categories", requireAuth, requireAdmin, h.createCategory)
		r.PUT("/categories/:id", requireAuth, requireAdmin, h.renameCategory)
		r.DELETE("/categories/:id", requireAuth, requireAdmin, h.deleteCategory)

		r.GET("/products", h.listProducts)
		r.GET("/products/:id", h.getProduct)
		r.POST("/products", requireAuth, requireAdmin, h.createProduct)
		r.PUT("/products/:id", requireAuth, requireAdmin, h.updateProduct)
		r.DELETE("/products/:id", requireAuth, requireAdmin, h.deleteProduct)
	}

	if d.Config.Enabled(config.ServiceCart) {
		h := &cartHandler{carts: d.Carts}
		g := r.Group("/cart", requireAuth)
		g.GET("", h.get)
		g.POST("/items", h.addItem)
		g.PUT("/items/:id", h.updateItem)
		g.DELETE("/items/:id", h.removeItem)
		g.DELETE("/items", h.clear)
	}

	if d.Config.Enabled(config.ServiceOrder) {
		h := &orderHandler{orders: d.Orders}
		g := r.Group("/orders", requireAuth)
		g.POST("/checkout", h.checkout)
		g.GET("", h.listMine)
		g.GET("/:id", h.get)

		admin := r.Group("/admin", requireAuth, requireAdmin)
		admin.GET("/orders", h.listAll)
		admin.GET("/orders/:id", h.getForAdmin)
		admin.PUT("/orders/:id/status", h.updateStatus)
	}

	return r
}

// NewHandler wraps the router in the outer chain:
// request id, access log, rate limit.
func NewHandler(d Deps) http.Handler {
	var h http.Handler = NewRouter(d)
	if d.Limiter != nil {
		h = d.Limiter.Middleware(h)
	}
	h = logger.LoggingMiddleware(h)
	return logger.RequestIDMiddleware(h)
}
