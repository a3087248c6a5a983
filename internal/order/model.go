package order

import "time"

type Type string

const (
	TypeDelivery Type = "DELIVERY"
	TypePickup   Type = "PICKUP"
)

type Order struct {
	ID              string    `json:"id"`
	OrderNumber     int64     `json:"order_number"`
	EstablishmentID string    `json:"establishment_id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	Type            Type      `json:"type"`
	Address         string    `json:"address"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Notes           string    `json:"notes"`
	Status          Status    `json:"status"`
	Total           string    `json:"total"` // NUMERIC -> string
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name,omitempty"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

// Detail is an order with its items, as shown on the status page and the
// admin dashboard.
type Detail struct {
	Order
	Items      []Item     `json:"items"`
	StatusView StatusView `json:"status_view"`
}

func NewDetail(o *Order, items []Item) Detail {
	if items == nil {
		items = []Item{}
	}
	return Detail{Order: *o, Items: items, StatusView: o.Status.View()}
}

type ListQuery struct {
	EstablishmentID string
	Status          Status
	Limit           int
	Offset          int
}

type Dashboard struct {
	Orders       []Detail `json:"orders"`
	PendingCount int      `json:"pending_count"`
}
