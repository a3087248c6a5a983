package category

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
	ErrNotFound  = fmt.Errorf("category %w", apperr.ErrNotFound)
	ErrDuplicate = apperr.Conflict("a category with this name already exists")
	ErrInUse     = apperr.Conflict("category still has products")
)

type Repository interface {
	List(ctx context.Context, establishmentID string) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c *Category, appendLast bool) error
	Update(ctx context.Context, c *Category, keepOrder bool) error
	Delete(ctx context.Context, id string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) List(ctx context.Context, establishmentID string) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, establishment_id, name, position, created_at
		FROM categories
		WHERE establishment_id::text = $1
		ORDER BY position ASC, created_at ASC
	`, establishmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.EstablishmentID, &c.Name, &c.Order, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, establishment_id, name, position, created_at
		FROM categories WHERE id::text = $1
	`, id).Scan(&c.ID, &c.EstablishmentID, &c.Name, &c.Order, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepo) Create(ctx context.Context, c *Category, appendLast bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, establishment_id, name, position, created_at)
		VALUES ($1, $2, $3,
		        CASE WHEN $5 THEN (SELECT COALESCE(MAX(position) + 1, 0) FROM categories WHERE establishment_id = $2)
		             ELSE $4 END,
		        NOW())
		RETURNING position, created_at
	`, c.ID, c.EstablishmentID, c.Name, c.Order, appendLast).Scan(&c.Order, &c.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) Update(ctx context.Context, c *Category, keepOrder bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		UPDATE categories
		SET name = $2,
		    position = CASE WHEN $4 THEN position ELSE $3 END
		WHERE id::text = $1
		RETURNING establishment_id, position, created_at
	`, c.ID, c.Name, c.Order, keepOrder).Scan(&c.EstablishmentID, &c.Order, &c.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	case db.IsUniqueViolation(err):
		return ErrDuplicate
	}
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id::text = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return ErrInUse
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
