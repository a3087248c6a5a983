package order

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

var (
	ErrEstablishmentNotFound = fmt.Errorf("establishment %w", apperr.ErrNotFound)
	ErrForbidden             = fmt.Errorf("%w: cannot manage orders of this establishment", apperr.ErrUnauthorized)
)

// Tenants tells whether an establishment exists and takes orders.
type Tenants interface {
	IsActive(ctx context.Context, establishmentID string) (bool, error)
}

// Catalog reports which products are orderable from an establishment.
type Catalog interface {
	ActiveIDs(ctx context.Context, establishmentID string, ids []string) (map[string]bool, error)
}

// Actor is whoever asks for a status change.
type Actor interface {
	CanManage(establishmentID string) bool
}

type Service struct {
	repo    Repository
	tenants Tenants
	catalog Catalog
	events  Publisher

	reads singleflight.Group
}

func NewService(repo Repository, tenants Tenants, catalog Catalog, events Publisher) *Service {
	return &Service{repo: repo, tenants: tenants, catalog: catalog, events: events}
}

func (s *Service) publish(ctx context.Context, e Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, e); err != nil {
		log.Printf("[order] publish %s order=%s: %v", e.Type, e.OrderID, err)
	}
}

func validate(req *CreateOrderRequest) error {
	req.EstablishmentID = strings.TrimSpace(req.EstablishmentID)
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Address = strings.TrimSpace(req.Address)

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"establishment_id", req.EstablishmentID},
		{"customer_name", req.CustomerName},
		{"customer_phone", req.CustomerPhone},
		{"date", req.Date},
		{"time", req.Time},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(req.Items) == 0 {
		missing = append(missing, "items")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing required fields: %s", strings.Join(missing, ", "))
	}

	switch Type(strings.ToUpper(string(req.Type))) {
	case "", TypeDelivery:
		req.Type = TypeDelivery
	case TypePickup:
		req.Type = TypePickup
	default:
		return apperr.Validation("type must be DELIVERY or PICKUP")
	}
	if req.Type == TypeDelivery && req.Address == "" {
		return apperr.Validation("address is required for delivery")
	}

	for i, it := range req.Items {
		switch {
		case strings.TrimSpace(it.ProductID) == "":
			return apperr.Validation("items[%d]: product_id is required", i)
		case it.Quantity <= 0:
			return apperr.Validation("items[%d]: quantity must be positive", i)
		case it.Price.IsNegative():
			return apperr.Validation("items[%d]: price must be non-negative", i)
		}
		// prices are stored in cents; the total is summed from the same values
		req.Items[i].Price = it.Price.Round(2)
	}
	return nil
}

// Total is the sum of price times quantity over the submitted items.
func Total(items []CreateOrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// Create validates and persists a new PENDING order. The stored total is
// always recomputed from the items; req.Total is ignored.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (Detail, error) {
	if err := validate(&req); err != nil {
		return Detail{}, err
	}

	ok, err := s.tenants.IsActive(ctx, req.EstablishmentID)
	if err != nil {
		return Detail{}, err
	}
	if !ok {
		return Detail{}, ErrEstablishmentNotFound
	}

	ids := make([]string, 0, len(req.Items))
	for _, it := range req.Items {
		ids = append(ids, it.ProductID)
	}
	known, err := s.catalog.ActiveIDs(ctx, req.EstablishmentID, ids)
	if err != nil {
		return Detail{}, err
	}
	for _, id := range ids {
		if !known[id] {
			return Detail{}, fmt.Errorf("product %s: %w", id, apperr.ErrNotFound)
		}
	}

	o := &Order{
		ID:              uuid.NewString(),
		EstablishmentID: req.EstablishmentID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		Type:            req.Type,
		Address:         req.Address,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		Status:          StatusPending,
		Total:           Total(req.Items).StringFixed(2),
	}
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, Item{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.StringFixed(2),
		})
	}
	if err := s.repo.Create(ctx, o, items); err != nil {
		return Detail{}, err
	}
	log.Printf("[order] placed id=%s number=%d establishment=%s total=%s", o.ID, o.OrderNumber, o.EstablishmentID, o.Total)
	s.publish(ctx, newEvent(EventPlaced, o, ""))
	return NewDetail(o, items), nil
}

// Get loads an order with its items. Concurrent reads of the same order,
// as produced by status polling, share one database round trip.
func (s *Service) Get(ctx context.Context, id string) (Detail, error) {
	v, err, _ := s.reads.Do(id, func() (any, error) {
		// shared by every waiting caller, so one hanging up must not fail the rest
		o, items, err := s.repo.GetByID(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		return NewDetail(o, items), nil
	})
	if err != nil {
		return Detail{}, err
	}
	return v.(Detail), nil
}

// UpdateStatus applies an admin decision to a PENDING order. Asking for the
// status the order already has succeeds without writing; any other change
// to a decided order is a conflict.
func (s *Service) UpdateStatus(ctx context.Context, actor Actor, id, status string) (Detail, error) {
	next, err := ParseStatus(status)
	if err != nil {
		return Detail{}, err
	}
	if next == StatusPending {
		return Detail{}, apperr.Validation("status can only be set to ACCEPTED or REJECTED")
	}

	o, items, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	if actor == nil || !actor.CanManage(o.EstablishmentID) {
		return Detail{}, ErrForbidden
	}
	if o.Status == next {
		return NewDetail(o, items), nil
	}
	if !o.Status.CanTransitionTo(next) {
		return Detail{}, apperr.Conflict("order already %s", strings.ToLower(string(o.Status)))
	}

	applied, err := s.repo.UpdateStatus(ctx, id, o.Status, next)
	if err != nil {
		return Detail{}, err
	}
	if !applied {
		// lost a race; report what the winner did
		cur, items, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return Detail{}, err
		}
		if cur.Status == next {
			return NewDetail(cur, items), nil
		}
		return Detail{}, apperr.Conflict("order already %s", strings.ToLower(string(cur.Status)))
	}

	prev := o.Status
	o.Status = next
	log.Printf("[order] status id=%s %s -> %s", o.ID, prev, next)
	s.publish(ctx, newEvent(EventStatusChanged, o, prev))
	return NewDetail(o, items), nil
}

func (s *Service) withItems(ctx context.Context, orders []Order) ([]Detail, error) {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := s.repo.GetItems(ctx, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]Detail, 0, len(orders))
	for i := range orders {
		out = append(out, NewDetail(&orders[i], items[orders[i].ID]))
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Detail, error) {
	if q.Status != "" {
		st, err := ParseStatus(string(q.Status))
		if err != nil {
			return nil, err
		}
		q.Status = st
	}
	orders, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, orders)
}

const dashboardSize = 20

// Dashboard returns the latest orders of an establishment and how many
// still wait for a decision.
func (s *Service) Dashboard(ctx context.Context, establishmentID string) (Dashboard, error) {
	orders, err := s.List(ctx, ListQuery{EstablishmentID: establishmentID, Limit: dashboardSize})
	if err != nil {
		return Dashboard{}, err
	}
	pending, err := s.repo.CountByStatus(ctx, establishmentID, StatusPending)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Orders: orders, PendingCount: pending}, nil
}

// All pages through every order of an establishment, newest first.
func (s *Service) All(ctx context.Context, establishmentID string) ([]Detail, error) {
	const page = 100
	var out []Detail
	for offset := 0; ; offset += page {
		batch, err := s.List(ctx, ListQuery{EstablishmentID: establishmentID, Limit: page, Offset: offset})
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		if len(batch) < page {
			return out, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}
