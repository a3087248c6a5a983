package order

import "github.com/shopspring/decimal"

// CreateOrderItem payload de ítem.
// swagger:model CreateOrderItem
type CreateOrderItem struct {
	ProductID string          `json:"product_id" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
	Quantity  int             `json:"quantity"  example:"2"`
	Price     decimal.Decimal `json:"price"     example:"10.00" swaggertype:"string"`
}

// CreateOrderRequest payload de creación de orden. Total is accepted for
// compatibility and ignored.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	EstablishmentID string            `json:"establishment_id" example:"b2f5ff47-2b1e-4f22-8a96-5f3c1f2f2e7b"`
	CustomerName    string            `json:"customer_name"    example:"João"`
	CustomerPhone   string            `json:"customer_phone"   example:"11999999999"`
	Type            Type              `json:"type"             example:"DELIVERY"`
	Address         string            `json:"address"          example:"Rua A, 10"`
	Date            string            `json:"date"             example:"2024-12-24"`
	Time            string            `json:"time"             example:"19:30"`
	Notes           string            `json:"notes"`
	Items           []CreateOrderItem `json:"items"`
	Total           *decimal.Decimal  `json:"total,omitempty" swaggertype:"string"`
}

// UpdateStatusRequest payload de cambio de estado.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"ACCEPTED"`
}
