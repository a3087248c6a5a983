package order

import (
	"context"
	"time"
)

type EventType string

const (
	EventPlaced        EventType = "order.placed"
	EventStatusChanged EventType = "order.status_changed"
)

// Event announces an order being placed or changing status.
type Event struct {
	Type            EventType `json:"type"`
	OrderID         string    `json:"order_id"`
	OrderNumber     int64     `json:"order_number"`
	EstablishmentID string    `json:"establishment_id"`
	Status          Status    `json:"status"`
	PreviousStatus  Status    `json:"previous_status,omitempty"`
	CustomerName    string    `json:"customer_name"`
	Total           string    `json:"total"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func newEvent(t EventType, o *Order, prev Status) Event {
	return Event{
		Type:            t,
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		EstablishmentID: o.EstablishmentID,
		Status:          o.Status,
		PreviousStatus:  prev,
		CustomerName:    o.CustomerName,
		Total:           o.Total,
		OccurredAt:      time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}
