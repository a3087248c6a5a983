// Package product provides the repository interface and PostgreSQL implementation for managing a store's catalog.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

var (
	ErrNotFound = fmt.Errorf("product %w", apperr.ErrNotFound)
)

type Query struct {
	EstablishmentID string
	CategoryID      string
	Q               string
	ActiveOnly      bool
	FeaturedOnly    bool
	Limit           int
	Offset          int
}

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, q Query) ([]Product, error)
	Catalog(ctx context.Context, establishmentID string) ([]Product, error)
	Update(ctx context.Context, p *Product, updatePrice bool) error
	Delete(ctx context.Context, id string) (bool, error)
	ActiveIDs(ctx context.Context, establishmentID string, ids []string) (map[string]bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const selectCols = `id, establishment_id, category_id, name, description, price::text, image, type, featured, active, created_at, updated_at`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.EstablishmentID, &p.CategoryID, &p.Name, &p.Description, &p.Price,
		&p.Image, &p.Type, &p.Featured, &p.Active, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO products (id, establishment_id, category_id, name, description, price, image, type, featured, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
		RETURNING created_at, updated_at
	`, p.ID, p.EstablishmentID, p.CategoryID, p.Name, p.Description, p.Price, p.Image, p.Type, p.Featured, p.Active).
		Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p Product
	err := scanProduct(r.db.QueryRow(ctx, `SELECT `+selectCols+` FROM products WHERE id::text=$1`, id), &p)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collect(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	out := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products
		WHERE establishment_id::text = $1
		  AND ($2 = '' OR category_id::text = $2)
		  AND ($3 = '' OR name ILIKE '%'||$3||'%' OR description ILIKE '%'||$3||'%')
		  AND (NOT $4 OR active)
		  AND (NOT $5 OR featured)
		ORDER BY created_at DESC
		LIMIT $6 OFFSET $7
	`, q.EstablishmentID, q.CategoryID, search, q.ActiveOnly, q.FeaturedOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Catalog returns every active product of an establishment, newest first.
func (r *PGRepo) Catalog(ctx context.Context, establishmentID string) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+`
		FROM products
		WHERE establishment_id::text = $1 AND active
		ORDER BY created_at DESC
	`, establishmentID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *PGRepo) Update(ctx context.Context, p *Product, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var tag pgconn.CommandTag
	var err error
	if updatePrice {
		tag, err = r.db.Exec(ctx, `
			UPDATE products
			SET category_id = $2, name = $3, description = $4, image = $5, type = $6, featured = $7,
			    price = $8,
			    updated_at = NOW()
			WHERE id::text = $1
		`, p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Type, p.Featured, p.Price)
	} else {
		tag, err = r.db.Exec(ctx, `
			UPDATE products
			SET category_id = $2, name = $3, description = $4, image = $5, type = $6, featured = $7,
			    updated_at = NOW()
			WHERE id::text = $1
		`, p.ID, p.CategoryID, p.Name, p.Description, p.Image, p.Type, p.Featured)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hides the product from the storefront. Past orders keep referencing it.
func (r *PGRepo) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `UPDATE products SET active = FALSE, updated_at = NOW() WHERE id::text=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ActiveIDs reports which of ids are active products of the establishment.
func (r *PGRepo) ActiveIDs(ctx context.Context, establishmentID string, ids []string) (map[string]bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id::text FROM products
		WHERE establishment_id::text = $1 AND active AND id::text = ANY($2)
	`, establishmentID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}
