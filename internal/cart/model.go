package cart

import "github.com/shopspring/decimal"

// Variant classifies a product as sold or rented.
type Variant string

const (
	VariantSale   Variant = "SALE"
	VariantRental Variant = "RENTAL"
)

type Item struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image,omitempty"`
	Type     Variant         `json:"type"`
}

// NewItem is an item as offered by the catalog, before it has a quantity.
type NewItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image,omitempty"`
	Type  Variant         `json:"type"`
}

type Cart struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Empty returns the cart every tenant starts with.
func Empty() Cart {
	return Cart{Items: []Item{}, Total: decimal.Zero}
}

// recompute re-sums the total from scratch after every mutation.
func (c *Cart) recompute() {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	c.Total = total
}

// normalize applies defaults to a decoded cart so consumers never see nil
// slices, blank variants or impossible quantities.
func (c *Cart) normalize() {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" || it.Quantity <= 0 {
			continue
		}
		if it.Type != VariantRental {
			it.Type = VariantSale
		}
		if it.Price.IsNegative() {
			it.Price = decimal.Zero
		}
		items = append(items, it)
	}
	c.Items = items
	c.recompute()
}

func (c *Cart) indexOf(id string) int {
	for i, it := range c.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Count is the number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
