package order

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/bebidas-delivery/internal/apperr"
	"github.com/MikeMC777/bebidas-delivery/internal/db/dbtest"
)

func seedStore(t *testing.T, pool *pgxpool.Pool) (estID string, products []string) {
	t.Helper()
	ctx := context.Background()
	estID = uuid.NewString()
	catID := uuid.NewString()
	_, err := pool.Exec(ctx, `INSERT INTO establishments (id, name, slug) VALUES ($1, 'Taxi Beer', $2)`, estID, "taxi-"+estID[:8])
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO categories (id, establishment_id, name) VALUES ($1, $2, 'Cervejas')`, catID, estID)
	require.NoError(t, err)
	for _, name := range []string{"Heineken", "Brahma"} {
		id := uuid.NewString()
		_, err = pool.Exec(ctx, `
			INSERT INTO products (id, establishment_id, category_id, name, price) VALUES ($1, $2, $3, $4, 10)
		`, id, estID, catID, name)
		require.NoError(t, err)
		products = append(products, id)
	}
	return estID, products
}

func TestPGRepo(t *testing.T) {
	pool := dbtest.Start(t)
	repo := NewPGRepo(pool)
	ctx := context.Background()
	estID, products := seedStore(t, pool)

	newOrder := func() (*Order, []Item) {
		o := &Order{
			ID: uuid.NewString(), EstablishmentID: estID, CustomerName: "João", CustomerPhone: "119",
			Type: TypeDelivery, Address: "Rua A", Date: "2024-12-24", Time: "19:30",
			Status: StatusPending, Total: "25.00",
		}
		items := []Item{
			{ID: uuid.NewString(), ProductID: products[0], Quantity: 2, Price: "10.00"},
			{ID: uuid.NewString(), ProductID: products[1], Quantity: 1, Price: "5.00"},
		}
		return o, items
	}

	t.Run("create and read back", func(t *testing.T) {
		o, items := newOrder()
		require.NoError(t, repo.Create(ctx, o, items))
		assert.Positive(t, o.OrderNumber)
		assert.False(t, o.CreatedAt.IsZero())

		got, gotItems, err := repo.GetByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, "25.00", got.Total)
		assert.Equal(t, StatusPending, got.Status)
		require.Len(t, gotItems, 2)
		names := []string{gotItems[0].ProductName, gotItems[1].ProductName}
		assert.ElementsMatch(t, []string{"Heineken", "Brahma"}, names)
	})

	t.Run("order numbers increase", func(t *testing.T) {
		a, ai := newOrder()
		b, bi := newOrder()
		require.NoError(t, repo.Create(ctx, a, ai))
		require.NoError(t, repo.Create(ctx, b, bi))
		assert.Greater(t, b.OrderNumber, a.OrderNumber)
	})

	t.Run("failed item rolls back the order", func(t *testing.T) {
		o, items := newOrder()
		items[1].ProductID = uuid.NewString() // violates the products foreign key
		require.Error(t, repo.Create(ctx, o, items))

		_, _, err := repo.GetByID(ctx, o.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("missing and malformed ids", func(t *testing.T) {
		_, _, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
		_, _, err = repo.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("guarded status update", func(t *testing.T) {
		o, items := newOrder()
		require.NoError(t, repo.Create(ctx, o, items))

		var wg sync.WaitGroup
		results := make([]bool, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				to := StatusAccepted
				if i%2 == 1 {
					to = StatusRejected
				}
				ok, err := repo.UpdateStatus(ctx, o.ID, StatusPending, to)
				assert.NoError(t, err)
				results[i] = ok
			}(i)
		}
		wg.Wait()

		applied := 0
		for _, ok := range results {
			if ok {
				applied++
			}
		}
		assert.Equal(t, 1, applied)
	})

	t.Run("list and count", func(t *testing.T) {
		n, err := repo.CountByStatus(ctx, estID, StatusPending)
		require.NoError(t, err)

		list, err := repo.List(ctx, ListQuery{EstablishmentID: estID, Status: StatusPending, Limit: 100})
		require.NoError(t, err)
		assert.Len(t, list, n)

		all, err := repo.List(ctx, ListQuery{EstablishmentID: estID})
		require.NoError(t, err)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		}

		items, err := repo.GetItems(ctx, all[0].ID, all[1].ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}
