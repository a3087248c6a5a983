package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

type Type string

const (
	TypeSale   Type = "SALE"
	TypeRental Type = "RENTAL"
)

type Product struct {
	ID              string `json:"id"`
	EstablishmentID string `json:"establishment_id"`
	CategoryID      string `json:"category_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price     string    `json:"price"`
	Image     string    `json:"image,omitempty"`
	Type      Type      `json:"type"`
	Featured  bool      `json:"featured"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListResponse represents the paginated response of products.
// swagger:model
type ListResponse struct {
	// search query applied
	Q string `json:"q,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// items found
	Items []Product `json:"items"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	CategoryID  string `json:"category_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Name        string `json:"name"        example:"Heineken Long Neck"`
	Description string `json:"description" example:"330ml"`
	Price       string `json:"price"       example:"7.90"`
	Image       string `json:"image"`
	Type        Type   `json:"type"        example:"SALE"`
	Featured    bool   `json:"featured"`
}

// UpdateProductRequest payload of update. Empty price keeps the current one.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Type        Type   `json:"type"`
	Featured    *bool  `json:"featured"`
}

// ParsePrice validates a non-negative decimal price and returns it with two
// decimal places.
func ParsePrice(s string) (string, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return "", apperr.Validation("price must be a decimal number")
	}
	if d.IsNegative() {
		return "", apperr.Validation("price must be non-negative")
	}
	return d.StringFixed(2), nil
}

func normalizeType(t Type) (Type, error) {
	switch Type(strings.ToUpper(string(t))) {
	case "", TypeSale:
		return TypeSale, nil
	case TypeRental:
		return TypeRental, nil
	}
	return "", apperr.Validation("type must be SALE or RENTAL")
}

// Build validates the request and returns the product it describes.
func (r CreateProductRequest) Build(establishmentID string) (*Product, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if r.CategoryID == "" {
		return nil, apperr.Validation("category_id is required")
	}
	price := "0.00"
	if strings.TrimSpace(r.Price) != "" {
		p, err := ParsePrice(r.Price)
		if err != nil {
			return nil, err
		}
		price = p
	}
	typ, err := normalizeType(r.Type)
	if err != nil {
		return nil, err
	}
	return &Product{
		EstablishmentID: establishmentID,
		CategoryID:      r.CategoryID,
		Name:            name,
		Description:     r.Description,
		Price:           price,
		Image:           r.Image,
		Type:            typ,
		Featured:        r.Featured,
		Active:          true,
	}, nil
}

// Apply merges the request into cur. It reports whether the price changed.
func (r UpdateProductRequest) Apply(cur *Product) (bool, error) {
	if name := strings.TrimSpace(r.Name); name != "" {
		cur.Name = name
	}
	if r.CategoryID != "" {
		cur.CategoryID = r.CategoryID
	}
	cur.Description = r.Description
	cur.Image = r.Image
	if r.Type != "" {
		typ, err := normalizeType(r.Type)
		if err != nil {
			return false, err
		}
		cur.Type = typ
	}
	if r.Featured != nil {
		cur.Featured = *r.Featured
	}
	if strings.TrimSpace(r.Price) == "" {
		return false, nil
	}
	p, err := ParsePrice(r.Price)
	if err != nil {
		return false, err
	}
	cur.Price = p
	return true, nil
}

// UnitPrice is the price as a decimal. Stored prices are always valid.
func (p Product) UnitPrice() decimal.Decimal {
	d, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Zero
	}
	return d
}
