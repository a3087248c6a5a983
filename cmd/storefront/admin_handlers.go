package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/export"
	"github.com/MikeMC777/bebidas-delivery/internal/httpx"
	"github.com/MikeMC777/bebidas-delivery/internal/notify"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var errNotYourStore = fmt.Errorf("%w: not your establishment", apperr.ErrUnauthorized)

// pageParams reads limit/offset with sane bounds.
func pageParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// managedStore resolves :slug and checks the actor may manage it.
func managedStore(c *gin.Context, ests *establishment.Service) (*establishment.Establishment, auth.Actor, bool) {
	actor, ok := auth.FromContext(c)
	if !ok {
		httpx.Fail(c, apperr.ErrUnauthenticated)
		return nil, actor, false
	}
	est, err := ests.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpx.Fail(c, err)
		return nil, actor, false
	}
	if !actor.CanManage(est.ID) {
		httpx.Fail(c, errNotYourStore)
		return nil, actor, false
	}
	return est, actor, true
}

type dashboardResponse struct {
	Establishment *establishment.Establishment `json:"establishment"`
	order.Dashboard
}

// dashboardHandler godoc
// @Summary Store admin dashboard: latest orders and pending count
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Establishment slug"
// @Success 200 {object} dashboardResponse
// @Router /api/admin/stores/{slug}/dashboard [get]
func dashboardHandler(ests *establishment.Service, orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		dash, err := orders.Dashboard(c.Request.Context(), est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboardResponse{Establishment: est, Dashboard: dash})
	}
}

func listOrdersHandler(ests *establishment.Service, orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		limit, offset := pageParams(c)
		list, err := orders.List(c.Request.Context(), order.ListQuery{
			EstablishmentID: est.ID,
			Status:          order.Status(c.Query("status")),
			Limit:           limit,
			Offset:          offset,
		})
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"limit": limit, "offset": offset, "items": list})
	}
}

// exportOrdersHandler godoc
// @Summary Download every order of the store as a spreadsheet
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param slug path string true "Establishment slug"
// @Success 200 {file} file
// @Router /api/admin/stores/{slug}/orders/export [get]
func exportOrdersHandler(ests *establishment.Service, orders *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		all, err := orders.All(c.Request.Context(), est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		var buf bytes.Buffer
		if err := export.Orders(&buf, all); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="pedidos-%s.xlsx"`, est.Slug))
		c.Data(http.StatusOK, export.ContentType, buf.Bytes())
	}
}

func liveOrdersHandler(ests *establishment.Service, hub *notify.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		if err := hub.Serve(c.Writer, c.Request, est.ID); err != nil {
			log.Printf("[ws] upgrade establishment=%s: %v", est.ID, err)
		}
	}
}

func listCategoriesHandler(ests *establishment.Service, cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		list, err := cats.List(c.Request.Context(), est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func createCategoryHandler(ests *establishment.Service, cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			httpx.Fail(c, err)
			return
		}
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		cat := &category.Category{ID: uuid.NewString(), EstablishmentID: est.ID, Name: req.Name}
		if req.Order != nil {
			cat.Order = *req.Order
		}
		if err := cats.Create(c.Request.Context(), cat, req.Order == nil); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, cat)
	}
}

// ownedCategory loads :id and checks the actor manages its establishment.
func ownedCategory(c *gin.Context, cats category.Repository) (*category.Category, bool) {
	actor, ok := auth.FromContext(c)
	if !ok {
		httpx.Fail(c, apperr.ErrUnauthenticated)
		return nil, false
	}
	cat, err := cats.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return nil, false
	}
	if !actor.CanManage(cat.EstablishmentID) {
		httpx.Fail(c, errNotYourStore)
		return nil, false
	}
	return cat, true
}

func updateCategoryHandler(cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req category.SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		if err := req.Validate(); err != nil {
			httpx.Fail(c, err)
			return
		}
		cat, ok := ownedCategory(c, cats)
		if !ok {
			return
		}
		cat.Name = req.Name
		if req.Order != nil {
			cat.Order = *req.Order
		}
		if err := cats.Update(c.Request.Context(), cat, req.Order == nil); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, cat)
	}
}

func deleteCategoryHandler(cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		cat, ok := ownedCategory(c, cats)
		if !ok {
			return
		}
		if err := cats.Delete(c.Request.Context(), cat.ID); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// listProductsHandler godoc
// @Summary Products of the store, paginated
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Establishment slug"
// @Param q query string false "Search in name/description"
// @Param category_id query string false "Category filter"
// @Param include_inactive query bool false "Include deleted products"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} product.ListResponse
// @Router /api/admin/stores/{slug}/products [get]
func listProductsHandler(ests *establishment.Service, prods product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		limit, offset := pageParams(c)
		q := product.Query{
			EstablishmentID: est.ID,
			CategoryID:      c.Query("category_id"),
			Q:               c.Query("q"),
			ActiveOnly:      c.Query("include_inactive") != "true",
			Limit:           limit,
			Offset:          offset,
		}
		items, err := prods.List(c.Request.Context(), q)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, product.ListResponse{Q: q.Q, Limit: limit, Offset: offset, Items: items})
	}
}

// checkCategory verifies the category exists and belongs to the establishment.
func checkCategory(c *gin.Context, cats category.Repository, establishmentID, categoryID string) bool {
	cat, err := cats.GetByID(c.Request.Context(), categoryID)
	if errors.Is(err, category.ErrNotFound) || (err == nil && cat.EstablishmentID != establishmentID) {
		httpx.Fail(c, apperr.Validation("category_id does not belong to this establishment"))
		return false
	}
	if err != nil {
		httpx.Fail(c, err)
		return false
	}
	return true
}

func createProductHandler(ests *establishment.Service, prods product.Repository, cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		est, _, ok := managedStore(c, ests)
		if !ok {
			return
		}
		p, err := req.Build(est.ID)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if !checkCategory(c, cats, est.ID, p.CategoryID) {
			return
		}
		p.ID = uuid.NewString()
		if err := prods.Create(c.Request.Context(), p); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// ownedProduct loads :id and checks the actor manages its establishment.
func ownedProduct(c *gin.Context, prods product.Repository) (*product.Product, bool) {
	actor, ok := auth.FromContext(c)
	if !ok {
		httpx.Fail(c, apperr.ErrUnauthenticated)
		return nil, false
	}
	p, err := prods.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return nil, false
	}
	if !actor.CanManage(p.EstablishmentID) {
		httpx.Fail(c, errNotYourStore)
		return nil, false
	}
	return p, true
}

func updateProductHandler(prods product.Repository, cats category.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequest(c, "invalid json")
			return
		}
		p, ok := ownedProduct(c, prods)
		if !ok {
			return
		}
		prevCategory := p.CategoryID
		priceChanged, err := req.Apply(p)
		if err != nil {
			httpx.Fail(c, err)
			return
		}
		if p.CategoryID != prevCategory && !checkCategory(c, cats, p.EstablishmentID, p.CategoryID) {
			return
		}
		if err := prods.Update(c.Request.Context(), p, priceChanged); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// deleteProductHandler hides the product from the storefront. Past orders
// keep referencing it.
func deleteProductHandler(prods product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := ownedProduct(c, prods)
		if !ok {
			return
		}
		if _, err := prods.Delete(c.Request.Context(), p.ID); err != nil {
			httpx.Fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
