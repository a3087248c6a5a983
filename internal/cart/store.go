package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

const storageTimeout = 2 * time.Second

// Store keeps one cart per tenant in a KV slot keyed "<namespace>_<tenant>".
// None of its operations fail: when the slot cannot be read or written the
// cart degrades to an ephemeral one and the failure is logged.
type Store struct {
	kv        KV
	namespace string
}

func NewStore(kv KV, namespace string) *Store {
	return &Store{kv: kv, namespace: namespace}
}

// WithShopper scopes the store to one browsing context, so two customers of
// the same tenant never share a slot.
func (s *Store) WithShopper(shopperID string) *Store {
	return &Store{kv: s.kv, namespace: s.namespace + ":" + shopperID}
}

func (s *Store) Key(tenant string) string {
	return s.namespace + "_" + tenant
}

func (s *Store) Get(ctx context.Context, tenant string) Cart {
	if s == nil || s.kv == nil {
		return Empty()
	}
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	data, err := s.kv.Get(ctx, s.Key(tenant))
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			log.Printf("[cart] get %s: %v", s.Key(tenant), err)
		}
		return Empty()
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("[cart] decode %s: %v", s.Key(tenant), err)
		return Empty()
	}
	c.normalize()
	return c
}

// Add puts one more unit of item in the tenant's cart, appending a new line
// when the product is not there yet.
func (s *Store) Add(ctx context.Context, tenant string, item NewItem) Cart {
	c := s.Get(ctx, tenant)
	if i := c.indexOf(item.ID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		typ := item.Type
		if typ != VariantRental {
			typ = VariantSale
		}
		c.Items = append(c.Items, Item{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
			Image:    item.Image,
			Type:     typ,
		})
	}
	c.recompute()
	s.save(ctx, tenant, c)
	return c
}

// SetQuantity overwrites a line's quantity; zero or less drops the line.
// Unknown ids leave the cart untouched.
func (s *Store) SetQuantity(ctx context.Context, tenant, itemID string, quantity int) Cart {
	c := s.Get(ctx, tenant)
	if i := c.indexOf(itemID); i >= 0 {
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
	}
	c.recompute()
	s.save(ctx, tenant, c)
	return c
}

func (s *Store) Clear(ctx context.Context, tenant string) Cart {
	c := Empty()
	s.save(ctx, tenant, c)
	return c
}

func (s *Store) save(ctx context.Context, tenant string, c Cart) {
	if s == nil || s.kv == nil {
		return
	}
	data, err := json.Marshal(c)
	if err != nil {
		log.Printf("[cart] encode %s: %v", s.Key(tenant), err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()
	if err := s.kv.Set(ctx, s.Key(tenant), data); err != nil {
		log.Printf("[cart] set %s: %v", s.Key(tenant), err)
	}
}
