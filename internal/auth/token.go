// Package auth issues and verifies session tokens and decides what a
// signed-in actor may manage.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

type Role string

const (
	RoleStoreAdmin Role = "STORE_ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Actor is the signed-in user behind a request.
type Actor struct {
	UserID            string `json:"id"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              Role   `json:"role"`
	EstablishmentID   string `json:"establishment_id,omitempty"`
	EstablishmentSlug string `json:"establishment_slug,omitempty"`
}

func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// CanManage reports whether the actor may act on the given establishment.
func (a Actor) CanManage(establishmentID string) bool {
	if a.IsSuperAdmin() {
		return true
	}
	return a.Role == RoleStoreAdmin && a.EstablishmentID != "" && a.EstablishmentID == establishmentID
}

func (a Actor) CanManageSlug(slug string) bool {
	if a.IsSuperAdmin() {
		return true
	}
	return a.Role == RoleStoreAdmin && a.EstablishmentSlug != "" && a.EstablishmentSlug == slug
}

type Claims struct {
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              Role   `json:"role"`
	EstablishmentID   string `json:"establishmentId,omitempty"`
	EstablishmentSlug string `json:"establishmentSlug,omitempty"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs an HS256 token for the actor.
func (i *Issuer) Issue(a Actor) (string, time.Time, error) {
	now := i.now()
	exp := now.Add(i.ttl)
	claims := &Claims{
		Email:             a.Email,
		Name:              a.Name,
		Role:              a.Role,
		EstablishmentID:   a.EstablishmentID,
		EstablishmentSlug: a.EstablishmentSlug,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.UserID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (i *Issuer) Parse(tokenStr string) (Actor, error) {
	if tokenStr == "" {
		return Actor{}, fmt.Errorf("%w: missing token", apperr.ErrUnauthenticated)
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return Actor{}, fmt.Errorf("%w: invalid token", apperr.ErrUnauthenticated)
	}
	if claims.Subject == "" || (claims.Role != RoleStoreAdmin && claims.Role != RoleSuperAdmin) {
		return Actor{}, fmt.Errorf("%w: invalid claims", apperr.ErrUnauthenticated)
	}
	return Actor{
		UserID:            claims.Subject,
		Email:             claims.Email,
		Name:              claims.Name,
		Role:              claims.Role,
		EstablishmentID:   claims.EstablishmentID,
		EstablishmentSlug: claims.EstablishmentSlug,
	}, nil
}
