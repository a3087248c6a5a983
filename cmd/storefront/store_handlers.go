package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/cart"
	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
)

const (
	cartHeader    = "X-Cart-ID"
	cartCookie    = "cart_id"
	cartCookieAge = 30 * 24 * 60 * 60
	maxFeatured   = 6
)

type categoryView struct {
	category.Category
	Products []product.Product `json:"products"`
}

type storefrontResponse struct {
	Establishment *establishment.Establishment `json:"establishment"`
	Categories    []categoryView               `json:"categories"`
	Featured      []product.Product            `json:"featured"`
}

// getStorefrontHandler godoc
// @Summary Public storefront of an establishment
// @Tags storefront
// @Produce json
// @Param slug path string true "Establishment slug"
// @Success 200 {object} storefrontResponse
// @Failure 404 {object} httpx.HTTPError
// @Router /api/stores/{slug} [get]
func getStorefrontHandler(ests *establishment.Service, cats category.Repository, prods product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		categories, err := cats.List(c.Request.Context(), est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		catalog, err := prods.Catalog(c.Request.Context(), est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}

		byCategory := make(map[string][]product.Product, len(categories))
		featured := []product.Product{}
		for _, p := range catalog {
			byCategory[p.CategoryID] = append(byCategory[p.CategoryID], p)
			if p.Featured && len(featured) < maxFeatured {
				featured = append(featured, p)
			}
		}
		views := make([]categoryView, 0, len(categories))
		for _, cat := range categories {
			ps := byCategory[cat.ID]
			if ps == nil {
				ps = []product.Product{}
			}
			views = append(views, categoryView{Category: cat, Products: ps})
		}
		c.JSON(http.StatusOK, storefrontResponse{Establishment: est, Categories: views, Featured: featured})
	}
}

// shopperCart scopes the cart store to the browsing context of the request,
// issuing a new shopper id when the client has none.
func shopperCart(c *gin.Context, carts *cart.Store) *cart.Store {
	id := c.GetHeader(cartHeader)
	if id == "" {
		id, _ = c.Cookie(cartCookie)
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	c.Header(cartHeader, id)
	c.SetCookie(cartCookie, id, cartCookieAge, "/", "", false, true)
	return carts.WithShopper(id)
}

// getCartHandler godoc
// @Summary Current cart of the shopper for this store
// @Tags cart
// @Produce json
// @Param slug path string true "Establishment slug"
// @Param X-Cart-ID header string false "Shopper id"
// @Success 200 {object} cart.Cart
// @Router /api/stores/{slug}/cart [get]
func getCartHandler(ests *establishment.Service, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, shopperCart(c, carts).Get(c.Request.Context(), est.Slug))
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

// addCartItemHandler godoc
// @Summary Add one unit of a product
// @Tags cart
// @Accept json
// @Produce json
// @Param slug path string true "Establishment slug"
// @Param body body addItemRequest true "Product"
// @Success 200 {object} cart.Cart
// @Failure 404 {object} httpx.HTTPError
// @Router /api/stores/{slug}/cart/items [post]
func addCartItemHandler(ests *establishment.Service, prods product.Repository, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body addItemRequest
		if err := c.ShouldBindJSON(&body); err != nil || body.ProductID == "" {
			httpx.BadRequest(c, "product_id is required")
			return
		}
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		p, err := prods.GetByID(c.Request.Context(), body.ProductID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if !p.Active || p.EstablishmentID != est.ID {
			httpx.Fail(c, product.ErrNotFound)
			return
		}
		cur := shopperCart(c, carts).Add(c.Request.Context(), est.Slug, cart.NewItem{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.UnitPrice(),
			Image: p.Image,
			Type:  cart.Variant(p.Type),
		})
		c.JSON(http.StatusOK, cur)
	}
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

// setCartQuantityHandler godoc
// @Summary Set the quantity of a line; zero or less removes it
// @Tags cart
// @Accept json
// @Produce json
// @Param slug path string true "Establishment slug"
// @Param id path string true "Product id"
// @Param body body setQuantityRequest true "Quantity"
// @Success 200 {object} cart.Cart
// @Router /api/stores/{slug}/cart/items/{id} [patch]
func setCartQuantityHandler(ests *establishment.Service, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body setQuantityRequest
		if err := c.ShouldBindJSON(&body); err != nil || body.Quantity == nil {
			httpx.BadRequest(c, "quantity is required")
			return
		}
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		cur := shopperCart(c, carts).SetQuantity(c.Request.Context(), est.Slug, c.Param("id"), *body.Quantity)
		c.JSON(http.StatusOK, cur)
	}
}

// clearCartHandler godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Param slug path string true "Establishment slug"
// @Success 200 {object} cart.Cart
// @Router /api/stores/{slug}/cart [delete]
func clearCartHandler(ests *establishment.Service, carts *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, shopperCart(c, carts).Clear(c.Request.Context(), est.Slug))
	}
}

type checkoutRequest struct {
	CustomerName  string     `json:"customer_name"  example:"João"`
	CustomerPhone string     `json:"customer_phone" example:"11999999999"`
	Type          order.Type `json:"type"           example:"DELIVERY"`
	Address       string     `json:"address"        example:"Rua A, 10"`
	Date          string     `json:"date"           example:"2024-12-24"`
	Time          string     `json:"time"           example:"19:30"`
	Notes         string     `json:"notes"`
}

// checkoutHandler godoc
// @Summary Submit the cart as an order
// @Description The cart is cleared only when the order is stored.
// @Tags cart
// @Accept json
// @Produce json
// @Param slug path string true "Establishment slug"
// @Param body body checkoutRequest true "Customer data"
// @Success 201 {object} order.Detail
// @Failure 400 {object} httpx.HTTPError
// @Router /api/stores/{slug}/checkout [post]
func checkoutHandler(ests *establishment.Service, carts *cart.Store, orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body checkoutRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		est, err := ests.Public(c.Request.Context(), c.Param("slug"))
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		store := shopperCart(c, carts)
		cur := store.Get(c.Request.Context(), est.Slug)
		if len(cur.Items) == 0 {
			httpx.Fail(c, apperr.Validation("cart is empty"))
			return
		}

		req := order.CreateOrderRequest{
			EstablishmentID: est.ID,
			CustomerName:    body.CustomerName,
			CustomerPhone:   body.CustomerPhone,
			Type:            body.Type,
			Address:         body.Address,
			Date:            body.Date,
			Time:            body.Time,
			Notes:           body.Notes,
			Items:           make([]order.CreateOrderItem, 0, len(cur.Items)),
		}
		for _, it := range cur.Items {
			req.Items = append(req.Items, order.CreateOrderItem{ProductID: it.ID, Quantity: it.Quantity, Price: it.Price})
		}
		d, err := orders.Create(c.Request.Context(), req)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		store.Clear(c.Request.Context(), est.Slug)
		c.JSON(http.StatusCreated, d)
	}
}
