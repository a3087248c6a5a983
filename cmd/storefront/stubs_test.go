package main

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MikeMC777/bebidas-delivery/internal/category"
	"github.com/MikeMC777/bebidas-delivery/internal/establishment"
	"github.com/MikeMC777/bebidas-delivery/internal/order"
	"github.com/MikeMC777/bebidas-delivery/internal/product"
	"github.com/MikeMC777/bebidas-delivery/internal/user"
)

//
// ---------- in-memory repositories ----------
//

type stubEstablishments struct {
	byID map[string]*establishment.Establishment
}

func (s *stubEstablishments) Create(_ context.Context, e *establishment.Establishment) error {
	for _, v := range s.byID {
		if v.Slug == e.Slug {
			return establishment.ErrSlugTaken
		}
	}
	cp := *e
	s.byID[e.ID] = &cp
	return nil
}

func (s *stubEstablishments) GetByID(_ context.Context, id string) (*establishment.Establishment, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, establishment.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *stubEstablishments) GetBySlug(_ context.Context, slug string) (*establishment.Establishment, error) {
	for _, v := range s.byID {
		if v.Slug == slug {
			cp := *v
			return &cp, nil
		}
	}
	return nil, establishment.ErrNotFound
}

func (s *stubEstablishments) Update(_ context.Context, e *establishment.Establishment) error {
	cur, ok := s.byID[e.ID]
	if !ok {
		return establishment.ErrNotFound
	}
	e.Active = cur.Active
	cp := *e
	s.byID[e.ID] = &cp
	return nil
}

func (s *stubEstablishments) SetActive(_ context.Context, id string, active bool) error {
	e, ok := s.byID[id]
	if !ok {
		return establishment.ErrNotFound
	}
	e.Active = active
	return nil
}

func (s *stubEstablishments) List(context.Context) ([]establishment.Summary, error) {
	out := []establishment.Summary{}
	for _, v := range s.byID {
		out = append(out, establishment.Summary{Establishment: *v, Admins: []establishment.Admin{}})
	}
	return out, nil
}

func (s *stubEstablishments) Stats(context.Context) (establishment.Stats, error) {
	return establishment.Stats{Establishments: len(s.byID)}, nil
}

type stubCategories struct {
	items map[string]*category.Category
}

func (s *stubCategories) List(_ context.Context, estID string) ([]category.Category, error) {
	out := []category.Category{}
	for _, c := range s.items {
		if c.EstablishmentID == estID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *stubCategories) GetByID(_ context.Context, id string) (*category.Category, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, category.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCategories) Create(_ context.Context, c *category.Category, appendLast bool) error {
	if appendLast {
		c.Order = len(s.items)
	}
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *stubCategories) Update(_ context.Context, c *category.Category, keepOrder bool) error {
	cur, ok := s.items[c.ID]
	if !ok {
		return category.ErrNotFound
	}
	cur.Name = c.Name
	if !keepOrder {
		cur.Order = c.Order
	}
	return nil
}

func (s *stubCategories) Delete(_ context.Context, id string) error {
	if _, ok := s.items[id]; !ok {
		return category.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

type stubProducts struct {
	items map[string]*product.Product
}

func (s *stubProducts) Create(_ context.Context, p *product.Product) error {
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProducts) List(_ context.Context, q product.Query) ([]product.Product, error) {
	out := []product.Product{}
	for _, p := range s.items {
		if p.EstablishmentID != q.EstablishmentID || (q.ActiveOnly && !p.Active) {
			continue
		}
		if q.Q != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q.Q)) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubProducts) Catalog(ctx context.Context, estID string) ([]product.Product, error) {
	out, _ := s.List(ctx, product.Query{EstablishmentID: estID, ActiveOnly: true})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *stubProducts) Update(_ context.Context, p *product.Product, _ bool) error {
	if _, ok := s.items[p.ID]; !ok {
		return product.ErrNotFound
	}
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProducts) Delete(_ context.Context, id string) (bool, error) {
	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	p.Active = false
	return true, nil
}

func (s *stubProducts) ActiveIDs(_ context.Context, estID string, ids []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range ids {
		if p, ok := s.items[id]; ok && p.Active && p.EstablishmentID == estID {
			out[id] = true
		}
	}
	return out, nil
}

type stubOrders struct {
	mu     sync.Mutex
	seq    int64
	orders map[string]*order.Order
	items  map[string][]order.Item
}

func (s *stubOrders) Create(_ context.Context, o *order.Order, items []order.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	o.OrderNumber = s.seq
	o.CreatedAt = time.Now().UTC().Add(time.Duration(s.seq) * time.Millisecond)
	o.UpdatedAt = o.CreatedAt
	cp := *o
	s.orders[o.ID] = &cp
	s.items[o.ID] = append([]order.Item(nil), items...)
	return nil
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*order.Order, []order.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, nil, order.ErrNotFound
	}
	cp := *o
	return &cp, append([]order.Item(nil), s.items[id]...), nil
}

func (s *stubOrders) List(_ context.Context, q order.ListQuery) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []order.Order{}
	for _, o := range s.orders {
		if o.EstablishmentID == q.EstablishmentID && (q.Status == "" || o.Status == q.Status) {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Offset >= len(out) {
		return []order.Order{}, nil
	}
	out = out[q.Offset:]
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id string, from, to order.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (s *stubOrders) GetItems(_ context.Context, ids ...string) (map[string][]order.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string][]order.Item{}
	for _, id := range ids {
		out[id] = s.items[id]
	}
	return out, nil
}

func (s *stubOrders) CountByStatus(_ context.Context, estID string, st order.Status) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, o := range s.orders {
		if o.EstablishmentID == estID && o.Status == st {
			n++
		}
	}
	return n, nil
}

type stubUsers struct {
	byID map[string]*user.User
}

func (s *stubUsers) Create(_ context.Context, u *user.User) error {
	for _, v := range s.byID {
		if v.Email == u.Email {
			return user.ErrAlreadyExist
		}
	}
	cp := *u
	s.byID[u.ID] = &cp
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, v := range s.byID {
		if v.Email == email {
			cp := *v
			return &cp, nil
		}
	}
	return nil, user.ErrNotFound
}

// recorder captures published order events.
type recorder struct {
	mu     sync.Mutex
	events []order.Event
}

func (r *recorder) Publish(_ context.Context, e order.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []order.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]order.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
