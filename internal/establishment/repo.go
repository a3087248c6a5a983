package establishment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/db"
)

var (
	ErrNotFound  = fmt.Errorf("establishment %w", apperr.ErrNotFound)
	ErrSlugTaken = apperr.Conflict("slug already in use")
)

type Repository interface {
	Create(ctx context.Context, e *Establishment) error
	GetByID(ctx context.Context, id string) (*Establishment, error)
	GetBySlug(ctx context.Context, slug string) (*Establishment, error)
	Update(ctx context.Context, e *Establishment) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context) ([]Summary, error)
	Stats(ctx context.Context) (Stats, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `id, name, slug, phone, whatsapp, address, logo, active, created_at, updated_at`

func scan(row pgx.Row, e *Establishment) error {
	return row.Scan(&e.ID, &e.Name, &e.Slug, &e.Phone, &e.Whatsapp, &e.Address, &e.Logo, &e.Active, &e.CreatedAt, &e.UpdatedAt)
}

func (r *PGRepo) Create(ctx context.Context, e *Establishment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO establishments (id, name, slug, phone, whatsapp, address, logo, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING created_at, updated_at
	`, e.ID, e.Name, e.Slug, e.Phone, e.Whatsapp, e.Address, e.Logo, e.Active).Scan(&e.CreatedAt, &e.UpdatedAt)
	if db.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	return err
}

func (r *PGRepo) get(ctx context.Context, where string, arg any) (*Establishment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var e Establishment
	err := scan(r.db.QueryRow(ctx, `SELECT `+selectCols+` FROM establishments WHERE `+where, arg), &e)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Establishment, error) {
	return r.get(ctx, "id::text = $1", id)
}

func (r *PGRepo) GetBySlug(ctx context.Context, slug string) (*Establishment, error) {
	return r.get(ctx, "slug = $1", slug)
}

func (r *PGRepo) Update(ctx context.Context, e *Establishment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE establishments
		SET name = $2, slug = $3, phone = $4, whatsapp = $5, address = $6, logo = $7, updated_at = NOW()
		WHERE id::text = $1
		RETURNING active, created_at, updated_at
	`, e.ID, e.Name, e.Slug, e.Phone, e.Whatsapp, e.Address, e.Logo).Scan(&e.Active, &e.CreatedAt, &e.UpdatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case db.IsUniqueViolation(err):
		return ErrSlugTaken
	}
	return err
}

func (r *PGRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE establishments SET active = $2, updated_at = NOW() WHERE id::text = $1
	`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context) ([]Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT e.id, e.name, e.slug, e.phone, e.whatsapp, e.address, e.logo, e.active, e.created_at, e.updated_at,
		       (SELECT COUNT(*) FROM orders o WHERE o.establishment_id = e.id),
		       (SELECT COUNT(*) FROM products p WHERE p.establishment_id = e.id)
		FROM establishments e
		ORDER BY e.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Summary{}
	index := map[string]int{}
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Phone, &s.Whatsapp, &s.Address, &s.Logo, &s.Active,
			&s.CreatedAt, &s.UpdatedAt, &s.OrderCount, &s.ProductCount); err != nil {
			return nil, err
		}
		s.Admins = []Admin{}
		index[s.ID] = len(out)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	admins, err := r.db.Query(ctx, `
		SELECT establishment_id::text, id, email, name
		FROM users
		WHERE role = 'STORE_ADMIN' AND establishment_id IS NOT NULL
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer admins.Close()
	for admins.Next() {
		var estID string
		var a Admin
		if err := admins.Scan(&estID, &a.ID, &a.Email, &a.Name); err != nil {
			return nil, err
		}
		if i, ok := index[estID]; ok {
			out[i].Admins = append(out[i].Admins, a)
		}
	}
	return out, admins.Err()
}

func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM establishments),
		       (SELECT COUNT(*) FROM orders),
		       (SELECT COUNT(*) FROM orders WHERE status = 'PENDING')
	`).Scan(&s.Establishments, &s.Orders, &s.PendingOrders)
	return s, err
}
