package establishment

import "time"

// Establishment is one tenant of the platform, addressed publicly by Slug.
type Establishment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Phone     string    `json:"phone"`
	Whatsapp  string    `json:"whatsapp"`
	Address   string    `json:"address"`
	Logo      string    `json:"logo,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Admin struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Summary is an establishment as listed in the super-admin console.
type Summary struct {
	Establishment
	OrderCount   int     `json:"order_count"`
	ProductCount int     `json:"product_count"`
	Admins       []Admin `json:"admins"`
}

type Stats struct {
	Establishments int `json:"establishments"`
	Orders         int `json:"orders"`
	PendingOrders  int `json:"pending_orders"`
}

// SaveRequest payload for creating or replacing an establishment.
// swagger:model SaveEstablishmentRequest
type SaveRequest struct {
	Name     string `json:"name"     example:"Taxi Beer"`
	Slug     string `json:"slug"     example:"taxi-beer"`
	Phone    string `json:"phone"    example:"(11) 99999-9999"`
	Whatsapp string `json:"whatsapp" example:"5511999999999"`
	Address  string `json:"address"  example:"Rua das Cervejas, 123"`
	Logo     string `json:"logo"`
}

// SetActiveRequest toggles public visibility.
// swagger:model SetActiveRequest
type SetActiveRequest struct {
	Active *bool `json:"active"`
}
