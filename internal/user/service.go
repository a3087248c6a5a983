package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/auth"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)

const minPasswordLen = 6

// EstablishmentLookup confirms a store exists before an admin is bound to it.
type EstablishmentLookup interface {
	ByID(ctx context.Context, id string) (EstablishmentRef, error)
}

type EstablishmentRef struct {
	ID   string
	Slug string
}

type Service struct {
	repo           Repository
	establishments EstablishmentLookup
}

func NewService(repo Repository, establishments EstablishmentLookup) *Service {
	return &Service{repo: repo, establishments: establishments}
}

func validateCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", apperr.Validation("email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", apperr.Validation("invalid email")
	}
	if len(password) < minPasswordLen {
		return "", apperr.Validation("password must have at least %d characters", minPasswordLen)
	}
	return email, nil
}

func (s *Service) create(ctx context.Context, email, password, name string, role auth.Role, est *EstablishmentRef) (*User, error) {
	email, err := validateCredentials(email, password)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash error: %w", err)
	}
	u := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		Role:         role,
	}
	if est != nil {
		u.EstablishmentID = est.ID
		u.EstablishmentSlug = est.Slug
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Signup registers a store admin not yet bound to any store.
func (s *Service) Signup(ctx context.Context, in SignupRequest) (*User, error) {
	return s.create(ctx, in.Email, in.Password, in.Name, auth.RoleStoreAdmin, nil)
}

func (s *Service) CreateStoreAdmin(ctx context.Context, in CreateStoreAdminRequest) (*User, error) {
	if in.EstablishmentID == "" {
		return nil, apperr.Validation("establishment_id is required")
	}
	est, err := s.establishments.ByID(ctx, in.EstablishmentID)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in.Email, in.Password, in.Name, auth.RoleStoreAdmin, &est)
}

// Authenticate checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, in LoginRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, apperr.Validation("email and password are required")
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// EnsureSuperAdmin creates the platform super admin once. An existing
// account with that email is left untouched.
func (s *Service) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		log.Printf("[user] skip super admin bootstrap: SUPER_ADMIN_EMAIL/SUPER_ADMIN_PASSWORD not set")
		return nil
	}
	_, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err == nil {
		log.Printf("[user] super admin already exists: %s", email)
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, err := s.create(ctx, email, password, "Super Admin", auth.RoleSuperAdmin, nil); err != nil {
		return err
	}
	log.Printf("[user] super admin created: %s", email)
	return nil
}
