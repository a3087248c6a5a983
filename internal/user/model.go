package user

import (
	"time"

	"github.com/MikeMC777/bebidas-delivery/internal/auth"
)

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	PasswordHash      string    `json:"-"`
	Role              auth.Role `json:"role"`
	EstablishmentID   string    `json:"establishment_id,omitempty"`
	EstablishmentSlug string    `json:"establishment_slug,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Actor is the session identity of the user.
func (u *User) Actor() auth.Actor {
	return auth.Actor{
		UserID:            u.ID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		EstablishmentID:   u.EstablishmentID,
		EstablishmentSlug: u.EstablishmentSlug,
	}
}

// SignupRequest payload of self registration.
// swagger:model SignupRequest
type SignupRequest struct {
	Email    string `json:"email"    example:"dono@taxibeer.com"`
	Password string `json:"password" example:"segredo123"`
	Name     string `json:"name"     example:"Maria"`
}

// LoginRequest payload of login.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    example:"admin@platform.com"`
	Password string `json:"password" example:"admin123"`
}

// CreateStoreAdminRequest payload used by the super admin.
// swagger:model CreateStoreAdminRequest
type CreateStoreAdminRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Name            string `json:"name"`
	EstablishmentID string `json:"establishment_id"`
}
