package establishment

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slugs that collide with top-level frontend routes.
var reserved = map[string]bool{
	"admin":       true,
	"super-admin": true,
	"login":       true,
	"api":         true,
}

func ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return apperr.Validation("slug is required")
	case reserved[slug]:
		return apperr.Validation("slug %q is reserved", slug)
	case len(slug) > 64 || !slugRe.MatchString(slug):
		return apperr.Validation("slug must be lowercase letters, digits and dashes")
	}
	return nil
}

func (r *SaveRequest) normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if r.Name == "" {
		return apperr.Validation("name is required")
	}
	return ValidateSlug(r.Slug)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in SaveRequest) (*Establishment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	e := &Establishment{
		ID:       uuid.NewString(),
		Name:     in.Name,
		Slug:     in.Slug,
		Phone:    in.Phone,
		Whatsapp: in.Whatsapp,
		Address:  in.Address,
		Logo:     in.Logo,
		Active:   true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, in SaveRequest) (*Establishment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	e := &Establishment{
		ID:       id,
		Name:     in.Name,
		Slug:     in.Slug,
		Phone:    in.Phone,
		Whatsapp: in.Whatsapp,
		Address:  in.Address,
		Logo:     in.Logo,
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Establishment, error) {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Public returns the establishment behind a storefront slug. Inactive stores
// are reported as missing.
func (s *Service) Public(ctx context.Context, slug string) (*Establishment, error) {
	e, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !e.Active {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) BySlug(ctx context.Context, slug string) (*Establishment, error) {
	return s.repo.GetBySlug(ctx, slug)
}

func (s *Service) ByID(ctx context.Context, id string) (*Establishment, error) {
	return s.repo.GetByID(ctx, id)
}

// IsActive reports whether the establishment exists and accepts orders.
func (s *Service) IsActive(ctx context.Context, id string) (bool, error) {
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return e.Active, nil
}

func (s *Service) List(ctx context.Context) ([]Summary, error) { return s.repo.List(ctx) }

func (s *Service) Stats(ctx context.Context) (Stats, error) { return s.repo.Stats(ctx) }
