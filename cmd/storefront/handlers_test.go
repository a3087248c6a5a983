package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/bebidas-delivery/internal/auth"
	"github.com/MikeMC777/bebidas-delivery/internal/cart"
	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/export"
	"github.com/MikeMC777/bebidas-delivery/internal/notify"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

//
// ---------- FIXTURE ----------
//

type fixture struct {
	r      *gin.Engine
	app    *app
	events *recorder
	orders *stubOrders
	prods  *stubProducts

	owner    string // token of the taxi-beer admin
	stranger string // token of the outra admin
	super    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Now().UTC()
	ests := &stubEstablishments{byID: map[string]*establishment.Establishment{
		"est1": {ID: "est1", Name: "Taxi Beer", Slug: "taxi-beer", Active: true},
		"est2": {ID: "est2", Name: "Outra", Slug: "outra", Active: true},
		"est3": {ID: "est3", Name: "Fechada", Slug: "fechada", Active: false},
	}}
	cats := &stubCategories{items: map[string]*category.Category{
		"cat1": {ID: "cat1", EstablishmentID: "est1", Name: "Cervejas", Order: 1},
		"cat2": {ID: "cat2", EstablishmentID: "est2", Name: "Drinks", Order: 1},
	}}
	prods := &stubProducts{items: map[string]*product.Product{
		"p1": {ID: "p1", EstablishmentID: "est1", CategoryID: "cat1", Name: "Cerveja Pilsen", Price: "8.90", Type: product.TypeSale, Featured: true, Active: true, CreatedAt: now},
		"p2": {ID: "p2", EstablishmentID: "est1", CategoryID: "cat1", Name: "Barril 50L", Price: "450.00", Type: product.TypeRental, Active: true, CreatedAt: now},
		"p3": {ID: "p3", EstablishmentID: "est2", CategoryID: "cat2", Name: "Caipirinha", Price: "18.90", Type: product.TypeSale, Active: true, CreatedAt: now},
		"p4": {ID: "p4", EstablishmentID: "est1", CategoryID: "cat1", Name: "Antiga", Price: "5.00", Type: product.TypeSale, Active: false, CreatedAt: now},
	}}
	orders := &stubOrders{orders: map[string]*order.Order{}, items: map[string][]order.Item{}}
	events := &recorder{}

	estSvc := establishment.NewService(ests)
	tokens := auth.NewIssuer("test-secret", time.Hour)
	a := &app{
		establishments: estSvc,
		categories:     cats,
		products:       prods,
		orders:         order.NewService(orders, estSvc, prods, events),
		users:          user.NewService(&stubUsers{byID: map[string]*user.User{}}, establishmentRefs{estSvc}),
		carts:          cart.NewStore(cart.NewMemoryKV(), "beer_delivery_cart"),
		hub:            notify.NewHub(),
		tokens:         tokens,
		requestTimeout: 5 * time.Second,
	}

	issue := func(act auth.Actor) string {
		tok, _, err := tokens.Issue(act)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		return tok
	}
	return &fixture{
		r:        a.router(),
		app:      a,
		events:   events,
		orders:   orders,
		prods:    prods,
		owner:    issue(auth.Actor{UserID: "u1", Role: auth.RoleStoreAdmin, EstablishmentID: "est1", EstablishmentSlug: "taxi-beer"}),
		stranger: issue(auth.Actor{UserID: "u2", Role: auth.RoleStoreAdmin, EstablishmentID: "est2", EstablishmentSlug: "outra"}),
		super:    issue(auth.Actor{UserID: "u3", Role: auth.RoleSuperAdmin}),
	}
}

type req struct {
	method, path, body string
	token, cartID      string
}

func (f *fixture) do(rq req) *httptest.ResponseRecorder {
	var body io.Reader
	if rq.body != "" {
		body = bytes.NewBufferString(rq.body)
	}
	r := httptest.NewRequest(rq.method, rq.path, body)
	if rq.body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if rq.token != "" {
		r.Header.Set("Authorization", "Bearer "+rq.token)
	}
	if rq.cartID != "" {
		r.Header.Set(cartHeader, rq.cartID)
	}
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, r)
	return w
}

type orderPage struct {
	Items []order.Detail `json:"items"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json: %v body=%s", err, w.Body.String())
	}
	return v
}

func expect(t *testing.T, w *httptest.ResponseRecorder, code int) {
	t.Helper()
	if w.Code != code {
		t.Fatalf("status=%d body=%s (expected %d)", w.Code, w.Body.String(), code)
	}
}

//
// ---------- STOREFRONT ----------
//

func TestStorefront_ActiveCatalogOnly(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	w := f.do(req{method: http.MethodGet, path: "/api/stores/taxi-beer"})
	expect(t, w, http.StatusOK)
	got := decode[storefrontResponse](t, w)
	if got.Establishment == nil || got.Establishment.ID != "est1" {
		t.Fatalf("establishment=%+v", got.Establishment)
	}
	if len(got.Categories) != 1 || len(got.Categories[0].Products) != 2 {
		t.Fatalf("categories=%+v", got.Categories)
	}
	if len(got.Featured) != 1 || got.Featured[0].ID != "p1" {
		t.Fatalf("featured=%+v", got.Featured)
	}

	expect(t, f.do(req{method: http.MethodGet, path: "/api/stores/fechada"}), http.StatusNotFound)
	expect(t, f.do(req{method: http.MethodGet, path: "/api/stores/nenhuma"}), http.StatusNotFound)
}

//
// ---------- CART ----------
//

func TestCart_Walkthrough(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	w := f.do(req{method: http.MethodGet, path: "/api/stores/taxi-beer/cart"})
	expect(t, w, http.StatusOK)
	shopper := w.Header().Get(cartHeader)
	if _, err := uuid.Parse(shopper); err != nil {
		t.Fatalf("no shopper id issued: %q", shopper)
	}
	if c := decode[cart.Cart](t, w); len(c.Items) != 0 || !c.Total.IsZero() {
		t.Fatalf("fresh cart=%+v", c)
	}

	add := func(id string) cart.Cart {
		w := f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/cart/items", body: `{"product_id":"` + id + `"}`, cartID: shopper})
		expect(t, w, http.StatusOK)
		return decode[cart.Cart](t, w)
	}
	add("p1")
	c := add("p1")
	if len(c.Items) != 1 || c.Items[0].Quantity != 2 {
		t.Fatalf("after two adds=%+v", c.Items)
	}
	c = add("p2")
	if len(c.Items) != 2 || c.Items[1].Type != cart.VariantRental {
		t.Fatalf("after rental add=%+v", c.Items)
	}
	if !c.Total.Equal(decimal.RequireFromString("467.80")) {
		t.Fatalf("total=%s", c.Total)
	}

	w = f.do(req{method: http.MethodPatch, path: "/api/stores/taxi-beer/cart/items/p1", body: `{"quantity":0}`, cartID: shopper})
	expect(t, w, http.StatusOK)
	c = decode[cart.Cart](t, w)
	if len(c.Items) != 1 || c.Items[0].ID != "p2" || !c.Total.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("after removal=%+v total=%s", c.Items, c.Total)
	}

	// a different shopper has a cart of its own
	w = f.do(req{method: http.MethodGet, path: "/api/stores/taxi-beer/cart", cartID: uuid.NewString()})
	expect(t, w, http.StatusOK)
	if c := decode[cart.Cart](t, w); len(c.Items) != 0 {
		t.Fatalf("other shopper sees %+v", c.Items)
	}

	w = f.do(req{method: http.MethodDelete, path: "/api/stores/taxi-beer/cart", cartID: shopper})
	expect(t, w, http.StatusOK)
	if c := decode[cart.Cart](t, w); len(c.Items) != 0 {
		t.Fatalf("after clear=%+v", c.Items)
	}
}

func TestCart_RejectsForeignAndDeletedProducts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	shopper := uuid.NewString()

	for _, id := range []string{"p3", "p4", "missing"} {
		w := f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/cart/items", body: `{"product_id":"` + id + `"}`, cartID: shopper})
		expect(t, w, http.StatusNotFound)
	}
	expect(t, f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/cart/items", body: `{}`, cartID: shopper}), http.StatusBadRequest)
	expect(t, f.do(req{method: http.MethodPatch, path: "/api/stores/taxi-beer/cart/items/p1", body: `{}`, cartID: shopper}), http.StatusBadRequest)
}

//
// ---------- CHECKOUT ----------
//

const customer = `{"customer_name":"João","customer_phone":"11999999999","type":"PICKUP","date":"2024-12-24","time":"19:30"}`

func TestCheckout_SubmitsAndClearsCart(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	shopper := uuid.NewString()

	w := f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/checkout", body: customer, cartID: shopper})
	expect(t, w, http.StatusBadRequest)

	for i := 0; i < 2; i++ {
		expect(t, f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/cart/items", body: `{"product_id":"p1"}`, cartID: shopper}), http.StatusOK)
	}

	// invalid customer data keeps the cart
	w = f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/checkout", body: `{"customer_phone":"1"}`, cartID: shopper})
	expect(t, w, http.StatusBadRequest)
	w = f.do(req{method: http.MethodGet, path: "/api/stores/taxi-beer/cart", cartID: shopper})
	if c := decode[cart.Cart](t, w); len(c.Items) != 1 {
		t.Fatalf("cart lost after failed checkout: %+v", c.Items)
	}

	w = f.do(req{method: http.MethodPost, path: "/api/stores/taxi-beer/checkout", body: customer, cartID: shopper})
	expect(t, w, http.StatusCreated)
	d := decode[order.Detail](t, w)
	if d.Status != order.StatusPending || d.Total != "17.80" || d.OrderNumber == 0 || !d.StatusView.Pending {
		t.Fatalf("order=%+v", d)
	}
	if len(d.Items) != 1 || d.Items[0].Quantity != 2 || d.Items[0].Price != "8.90" {
		t.Fatalf("items=%+v", d.Items)
	}

	w = f.do(req{method: http.MethodGet, path: "/api/stores/taxi-beer/cart", cartID: shopper})
	if c := decode[cart.Cart](t, w); len(c.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", c.Items)
	}
	if got := f.events.types(); len(got) != 1 || got[0] != order.EventPlaced {
		t.Fatalf("events=%v", got)
	}
}

//
// ---------- ORDERS ----------
//

func createOrder(t *testing.T, f *fixture) order.Detail {
	t.Helper()
	body := `{"establishment_id":"est1","customer_name":"Ana","customer_phone":"11988887777","type":"DELIVERY",
		"address":"Rua A, 10","date":"2024-12-24","time":"20:00","total":"999.99",
		"items":[{"product_id":"p1","quantity":2,"price":"8.90"},{"product_id":"p2","quantity":1,"price":"450.00"}]}`
	w := f.do(req{method: http.MethodPost, path: "/api/orders", body: body})
	expect(t, w, http.StatusCreated)
	return decode[order.Detail](t, w)
}

func TestCreateOrder_RecomputesTotal(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	d := createOrder(t, f)
	if d.Total != "467.80" {
		t.Fatalf("total=%s, client total must be ignored", d.Total)
	}

	w := f.do(req{method: http.MethodGet, path: "/api/orders/" + d.ID})
	expect(t, w, http.StatusOK)
	got := decode[order.Detail](t, w)
	if got.ID != d.ID || len(got.Items) != 2 || got.StatusView.Label == "" {
		t.Fatalf("get=%+v", got)
	}
	expect(t, f.do(req{method: http.MethodGet, path: "/api/orders/" + uuid.NewString()}), http.StatusNotFound)
}

func TestCreateOrder_Rejections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	cases := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"no items", `{"establishment_id":"est1","customer_name":"A","customer_phone":"1","type":"PICKUP","date":"d","time":"t","items":[]}`, http.StatusBadRequest},
		{"delivery without address", `{"establishment_id":"est1","customer_name":"A","customer_phone":"1","type":"DELIVERY","date":"d","time":"t","items":[{"product_id":"p1","quantity":1,"price":"1"}]}`, http.StatusBadRequest},
		{"inactive store", `{"establishment_id":"est3","customer_name":"A","customer_phone":"1","type":"PICKUP","date":"d","time":"t","items":[{"product_id":"p1","quantity":1,"price":"1"}]}`, http.StatusNotFound},
		{"foreign product", `{"establishment_id":"est1","customer_name":"A","customer_phone":"1","type":"PICKUP","date":"d","time":"t","items":[{"product_id":"p3","quantity":1,"price":"1"}]}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		w := f.do(req{method: http.MethodPost, path: "/api/orders", body: tc.body})
		if w.Code != tc.code {
			t.Fatalf("%s: status=%d body=%s (expected %d)", tc.name, w.Code, w.Body.String(), tc.code)
		}
	}
	if len(f.orders.orders) != 0 {
		t.Fatalf("rejected orders were stored: %d", len(f.orders.orders))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	d := createOrder(t, f)
	path := "/api/orders/" + d.ID + "/status"

	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"ACCEPTED"}`}), http.StatusUnauthorized)
	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"ACCEPTED"}`, token: f.stranger}), http.StatusForbidden)
	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"PENDING"}`, token: f.owner}), http.StatusBadRequest)
	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"SHIPPED"}`, token: f.owner}), http.StatusBadRequest)

	w := f.do(req{method: http.MethodPatch, path: path, body: `{"status":"ACCEPTED"}`, token: f.owner})
	expect(t, w, http.StatusOK)
	if got := decode[order.Detail](t, w); got.Status != order.StatusAccepted || !got.StatusView.Accepted {
		t.Fatalf("after accept=%+v", got)
	}

	// same decision again is harmless, a different one is not
	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"ACCEPTED"}`, token: f.owner}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodPatch, path: path, body: `{"status":"REJECTED"}`, token: f.super}), http.StatusConflict)

	changes := 0
	for _, e := range f.events.types() {
		if e == order.EventStatusChanged {
			changes++
		}
	}
	if changes != 1 {
		t.Fatalf("status_changed events=%d", changes)
	}
}

//
// ---------- AUTH ----------
//

func TestSignupLoginMe(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	signup := `{"email":"Dono@TaxiBeer.com","password":"segredo123","name":"Maria"}`
	expect(t, f.do(req{method: http.MethodPost, path: "/api/signup", body: signup}), http.StatusCreated)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/signup", body: signup}), http.StatusConflict)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/signup", body: `{"email":"x@y.com","password":"123"}`}), http.StatusBadRequest)

	expect(t, f.do(req{method: http.MethodPost, path: "/api/auth/login", body: `{"email":"dono@taxibeer.com","password":"errada"}`}), http.StatusUnauthorized)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/auth/login", body: `{"email":"ninguem@taxibeer.com","password":"segredo123"}`}), http.StatusUnauthorized)

	w := f.do(req{method: http.MethodPost, path: "/api/auth/login", body: `{"email":"dono@taxibeer.com","password":"segredo123"}`})
	expect(t, w, http.StatusOK)
	sess := decode[sessionResponse](t, w)
	if sess.Token == "" || sess.User == nil || sess.User.Role != auth.RoleStoreAdmin {
		t.Fatalf("session=%+v", sess)
	}

	w = f.do(req{method: http.MethodGet, path: "/api/auth/me", token: sess.Token})
	expect(t, w, http.StatusOK)
	if me := decode[user.User](t, w); me.Email != "dono@taxibeer.com" {
		t.Fatalf("me=%+v", me)
	}
	expect(t, f.do(req{method: http.MethodGet, path: "/api/auth/me"}), http.StatusUnauthorized)
}

//
// ---------- STORE ADMIN ----------
//

func TestAdmin_DashboardAndExport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	createOrder(t, f)
	createOrder(t, f)

	w := f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/dashboard", token: f.owner})
	expect(t, w, http.StatusOK)
	dash := decode[dashboardResponse](t, w)
	if dash.PendingCount != 2 || len(dash.Orders) != 2 || dash.Establishment.Slug != "taxi-beer" {
		t.Fatalf("dashboard=%+v", dash)
	}
	if dash.Orders[0].OrderNumber < dash.Orders[1].OrderNumber {
		t.Fatalf("dashboard not newest first")
	}

	expect(t, f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/dashboard", token: f.stranger}), http.StatusForbidden)
	expect(t, f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/dashboard", token: f.super}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/dashboard"}), http.StatusUnauthorized)

	w = f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/orders?status=ACCEPTED", token: f.owner})
	expect(t, w, http.StatusOK)
	list := decode[orderPage](t, w)
	if len(list.Items) != 0 {
		t.Fatalf("accepted orders=%d", len(list.Items))
	}
	expect(t, f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/orders?status=NOPE", token: f.owner}), http.StatusBadRequest)

	w = f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/orders/export", token: f.owner})
	expect(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Fatalf("content-type=%q", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("empty spreadsheet")
	}
}

func TestAdmin_Categories(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	w := f.do(req{method: http.MethodPost, path: "/api/admin/stores/taxi-beer/categories", body: `{"name":"Drinks"}`, token: f.owner})
	expect(t, w, http.StatusCreated)
	created := decode[category.Category](t, w)
	if created.EstablishmentID != "est1" {
		t.Fatalf("category=%+v", created)
	}
	expect(t, f.do(req{method: http.MethodPost, path: "/api/admin/stores/taxi-beer/categories", body: `{"name":"  "}`, token: f.owner}), http.StatusBadRequest)

	expect(t, f.do(req{method: http.MethodPut, path: "/api/admin/categories/" + created.ID, body: `{"name":"Destilados","order":5}`, token: f.owner}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodPut, path: "/api/admin/categories/cat2", body: `{"name":"Minha"}`, token: f.owner}), http.StatusForbidden)
	expect(t, f.do(req{method: http.MethodDelete, path: "/api/admin/categories/" + created.ID, token: f.owner}), http.StatusNoContent)

	w = f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/categories", token: f.owner})
	expect(t, w, http.StatusOK)
	if list := decode[[]category.Category](t, w); len(list) != 1 {
		t.Fatalf("categories=%+v", list)
	}
}

func TestAdmin_Products(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	w := f.do(req{method: http.MethodPost, path: "/api/admin/stores/taxi-beer/products", token: f.owner,
		body: `{"category_id":"cat1","name":"Heineken Long Neck","price":"7.9","type":"SALE"}`})
	expect(t, w, http.StatusCreated)
	p := decode[product.Product](t, w)
	if p.Price != "7.90" || p.EstablishmentID != "est1" || !p.Active {
		t.Fatalf("product=%+v", p)
	}

	expect(t, f.do(req{method: http.MethodPost, path: "/api/admin/stores/taxi-beer/products", token: f.owner,
		body: `{"category_id":"cat2","name":"Intrusa","price":"1"}`}), http.StatusBadRequest)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/admin/stores/taxi-beer/products", token: f.owner,
		body: `{"category_id":"cat1","name":"Negativa","price":"-1"}`}), http.StatusBadRequest)

	w = f.do(req{method: http.MethodPut, path: "/api/admin/products/" + p.ID, token: f.owner, body: `{"price":"9.50","featured":true}`})
	expect(t, w, http.StatusOK)
	if got := decode[product.Product](t, w); got.Price != "9.50" || !got.Featured || got.Name != "Heineken Long Neck" {
		t.Fatalf("updated=%+v", got)
	}
	expect(t, f.do(req{method: http.MethodPut, path: "/api/admin/products/p3", token: f.owner, body: `{"name":"x"}`}), http.StatusForbidden)

	expect(t, f.do(req{method: http.MethodDelete, path: "/api/admin/products/p1", token: f.owner}), http.StatusNoContent)
	if f.prods.items["p1"].Active {
		t.Fatalf("p1 still active")
	}
	w = f.do(req{method: http.MethodGet, path: "/api/admin/stores/taxi-beer/products", token: f.owner})
	expect(t, w, http.StatusOK)
	if list := decode[product.ListResponse](t, w); len(list.Items) != 2 {
		t.Fatalf("active products=%d", len(list.Items))
	}
}

//
// ---------- SUPER ADMIN ----------
//

func TestSuperAdmin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	expect(t, f.do(req{method: http.MethodGet, path: "/api/super-admin/stats", token: f.owner}), http.StatusForbidden)
	w := f.do(req{method: http.MethodGet, path: "/api/super-admin/stats", token: f.super})
	expect(t, w, http.StatusOK)
	if st := decode[establishment.Stats](t, w); st.Establishments != 3 {
		t.Fatalf("stats=%+v", st)
	}

	w = f.do(req{method: http.MethodPost, path: "/api/super-admin/establishments", token: f.super, body: `{"name":"Adega 24h","slug":"adega-24h"}`})
	expect(t, w, http.StatusCreated)
	est := decode[establishment.Establishment](t, w)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/super-admin/establishments", token: f.super, body: `{"name":"Copia","slug":"adega-24h"}`}), http.StatusConflict)
	expect(t, f.do(req{method: http.MethodPost, path: "/api/super-admin/establishments", token: f.super, body: `{"name":"Reservada","slug":"admin"}`}), http.StatusBadRequest)

	w = f.do(req{method: http.MethodPost, path: "/api/super-admin/users", token: f.super,
		body: `{"email":"gerente@adega.com","password":"segredo123","name":"Gerente","establishment_id":"` + est.ID + `"}`})
	expect(t, w, http.StatusCreated)
	if u := decode[user.User](t, w); u.EstablishmentSlug != "adega-24h" || u.Role != auth.RoleStoreAdmin {
		t.Fatalf("store admin=%+v", u)
	}

	expect(t, f.do(req{method: http.MethodGet, path: "/api/stores/adega-24h"}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodPatch, path: "/api/super-admin/establishments/" + est.ID, token: f.super, body: `{}`}), http.StatusBadRequest)
	expect(t, f.do(req{method: http.MethodPatch, path: "/api/super-admin/establishments/" + est.ID, token: f.super, body: `{"active":false}`}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodGet, path: "/api/stores/adega-24h"}), http.StatusNotFound)

	w = f.do(req{method: http.MethodGet, path: "/api/super-admin/establishments", token: f.super})
	expect(t, w, http.StatusOK)
	if list := decode[[]establishment.Summary](t, w); len(list) != 4 {
		t.Fatalf("establishments=%d", len(list))
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.app.ready = func(context.Context) error { return nil }
	expect(t, f.do(req{method: http.MethodGet, path: "/healthz"}), http.StatusOK)
	expect(t, f.do(req{method: http.MethodGet, path: "/readyz"}), http.StatusOK)
}
