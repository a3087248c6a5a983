package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
)

var (
	ErrNotFound = fmt.Errorf("order %w", apperr.ErrNotFound)
)

type Repository interface {
	Create(ctx context.Context, o *Order, items []Item) error
	GetByID(ctx context.Context, id string) (*Order, []Item, error)
	List(ctx context.Context, q ListQuery) ([]Order, error)
	// UpdateStatus moves the order from one status to another and reports
	// whether it was still in from.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)
	GetItems(ctx context.Context, orderIDs ...string) (map[string][]Item, error)
	CountByStatus(ctx context.Context, establishmentID string, st Status) (int, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const orderCols = `id, order_number, establishment_id, customer_name, customer_phone, type, address, date, time, notes, status, total::text, created_at, updated_at`

func scanOrder(row pgx.Row, o *Order) error {
	return row.Scan(&o.ID, &o.OrderNumber, &o.EstablishmentID, &o.CustomerName, &o.CustomerPhone, &o.Type,
		&o.Address, &o.Date, &o.Time, &o.Notes, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt)
}

// Create inserts the order and its items in one transaction.
func (r *PGRepo) Create(ctx context.Context, o *Order, items []Item) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
    INSERT INTO orders (id, establishment_id, customer_name, customer_phone, type, address, date, time, notes, status, total, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
    RETURNING order_number, created_at, updated_at
  `, o.ID, o.EstablishmentID, o.CustomerName, o.CustomerPhone, o.Type, o.Address, o.Date, o.Time, o.Notes, o.Status, o.Total).
		Scan(&o.OrderNumber, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, product_id, quantity, price)
      VALUES ($1,$2,$3,$4,$5)
    `, it.ID, o.ID, it.ProductID, it.Quantity, it.Price); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, []Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	var o Order
	err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id::text=$1`, id), &o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	items, err := r.GetItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &o, items[id], nil
}

func (r *PGRepo) List(ctx context.Context, q ListQuery) ([]Order, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, `
    SELECT `+orderCols+`
    FROM orders
    WHERE establishment_id::text=$1 AND ($2 = '' OR status = $2)
    ORDER BY created_at DESC, order_number DESC LIMIT $3 OFFSET $4
  `, q.EstablishmentID, string(q.Status), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $3, updated_at = NOW()
    WHERE id::text = $1 AND status = $2
  `, id, from, to)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetItems returns the items of each order, with the product name joined in.
func (r *PGRepo) GetItems(ctx context.Context, orderIDs ...string) (map[string][]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out := make(map[string][]Item, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
    SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.price::text
    FROM order_items oi
    LEFT JOIN products p ON p.id = oi.product_id
    WHERE oi.order_id::text = ANY($1)
    ORDER BY p.name
  `, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}

func (r *PGRepo) CountByStatus(ctx context.Context, establishmentID string, st Status) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var n int
	err := r.db.QueryRow(ctx, `
    SELECT COUNT(*) FROM orders WHERE establishment_id::text = $1 AND status = $2
  `, establishmentID, st).Scan(&n)
	return n, err
}
