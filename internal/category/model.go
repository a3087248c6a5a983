package category

import (
	"strings"
	"time"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

type Category struct {
	ID              string    `json:"id"`
	EstablishmentID string    `json:"establishment_id"`
	Name            string    `json:"name"`
	Order           int       `json:"order"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveRequest payload of creation and update. A nil Order appends
// the category after the existing ones on create and keeps it on update.
// swagger:model SaveCategoryRequest
type SaveRequest struct {
	Name  string `json:"name"  example:"Cervejas"`
	Order *int   `json:"order" example:"1"`
}

func (r *SaveRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperr.Validation("name is required")
	}
	if r.Order != nil && *r.Order < 0 {
		return apperr.Validation("order must be non-negative")
	}
	return nil
}
