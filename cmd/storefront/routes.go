package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/bebidas-delivery/docs"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/cart"
	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/notify"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

// app holds everything the HTTP handlers need.
type app struct {
	establishments *establishment.Service
	categories     category.Repository
	products       product.Repository
	orders         *order.Service
	users          *user.Service
	carts          *cart.Store
	hub            *notify.Hub
	tokens         *auth.Issuer

	corsOrigins    []string
	requestTimeout time.Duration
	ready          func(ctx context.Context) error
}

func (a *app) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(a.corsOrigins))

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/readyz", func(c *gin.Context) {
		if a.ready != nil {
			if err := a.ready(c.Request.Context()); err != nil {
				c.String(http.StatusServiceUnavailable, "not ready")
				return
			}
		}
		c.String(http.StatusOK, "ready")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// long lived; kept out of the request timeout
	api.GET("/admin/stores/:slug/orders/live",
		auth.WSMiddleware(a.tokens), auth.RequireSlug(), liveOrdersHandler(a.establishments, a.hub))

	timed := api.Group("", httpx.Timeout(a.requestTimeout))

	stores := timed.Group("/stores/:slug")
	stores.GET("", getStorefrontHandler(a.establishments, a.categories, a.products))
	stores.GET("/cart", getCartHandler(a.establishments, a.carts))
	stores.DELETE("/cart", clearCartHandler(a.establishments, a.carts))
	stores.POST("/cart/items", addCartItemHandler(a.establishments, a.products, a.carts))
	stores.PATCH("/cart/items/:id", setCartQuantityHandler(a.establishments, a.carts))
	stores.POST("/checkout", checkoutHandler(a.establishments, a.carts, a.orders))

	timed.POST("/orders", createOrderHandler(a.orders))
	timed.GET("/orders/:id", getOrderHandler(a.orders))
	timed.PATCH("/orders/:id/status", auth.Middleware(a.tokens), updateOrderStatusHandler(a.orders))

	timed.POST("/signup", signupHandler(a.users))
	timed.POST("/auth/login", loginHandler(a.users, a.tokens))
	timed.GET("/auth/me", auth.Middleware(a.tokens), meHandler(a.users))

	admin := timed.Group("/admin", auth.Middleware(a.tokens))
	store := admin.Group("/stores/:slug", auth.RequireSlug())
	store.GET("/dashboard", dashboardHandler(a.establishments, a.orders))
	store.GET("/orders", listOrdersHandler(a.establishments, a.orders))
	store.GET("/orders/export", exportOrdersHandler(a.establishments, a.orders))
	store.GET("/categories", listCategoriesHandler(a.establishments, a.categories))
	store.POST("/categories", createCategoryHandler(a.establishments, a.categories))
	store.GET("/products", listProductsHandler(a.establishments, a.products))
	store.POST("/products", createProductHandler(a.establishments, a.products, a.categories))
	admin.PUT("/categories/:id", updateCategoryHandler(a.categories))
	admin.DELETE("/categories/:id", deleteCategoryHandler(a.categories))
	admin.PUT("/products/:id", updateProductHandler(a.products, a.categories))
	admin.DELETE("/products/:id", deleteProductHandler(a.products))

	super := timed.Group("/super-admin", auth.Middleware(a.tokens, auth.RoleSuperAdmin))
	super.GET("/establishments", listEstablishmentsHandler(a.establishments))
	super.POST("/establishments", createEstablishmentHandler(a.establishments))
	super.PUT("/establishments/:id", updateEstablishmentHandler(a.establishments))
	super.PATCH("/establishments/:id", setEstablishmentActiveHandler(a.establishments))
	super.POST("/users", createStoreAdminHandler(a.users))
	super.GET("/stats", statsHandler(a.establishments))

	return r
}
