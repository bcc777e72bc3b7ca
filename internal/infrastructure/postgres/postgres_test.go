package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/tiendas-api/internal/application/retail/retailtest"
	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tiendas-api/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPool conecta a TEST_DATABASE_URL; sin esa variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido; se omiten los tests de PostgreSQL")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 10})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.EnsureSchema(ctx, pool))
	return pool
}

func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE inventory_items, products, stores RESTART IDENTITY`)
	require.NoError(t, err)
}

func TestPostgres_Conformidad(t *testing.T) {
	pool := openTestPool(t)
	retailtest.Run(t, func(t *testing.T) retailtest.Backend {
		truncate(t, pool)
		return retailtest.Backend{
			Stores:    postgres.NewStoreRepository(pool),
			Products:  postgres.NewProductRepository(pool),
			Inventory: postgres.NewInventoryRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
		}
	})
}

func TestEnsureSchema_Idempotente(t *testing.T) {
	pool := openTestPool(t)
	require.NoError(t, postgres.EnsureSchema(context.Background(), pool))
}

func TestInventoryRepo_ConstraintsComoErroresDeDominio(t *testing.T) {
	pool := openTestPool(t)
	truncate(t, pool)
	ctx := context.Background()

	store := &entity.Store{Name: "Main", Address: "x"}
	require.NoError(t, postgres.NewStoreRepository(pool).Create(ctx, store))
	assert.Equal(t, 10000, store.Code)
	require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, &entity.Product{Name: "Bread"}))

	repo := postgres.NewInventoryRepository(pool)
	err := repo.Merge(ctx, store.Code, "Bread", 5, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	require.NoError(t, repo.Merge(ctx, store.Code, "Bread", 5, decimal.NewFromInt(2)))
	err = repo.Merge(ctx, store.Code, "Bread", -6, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	err = repo.Merge(ctx, store.Code, "Desconocido", 1, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	item, err := repo.Get(ctx, store.Code, "Bread")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, decimal.NewFromInt(2).Equal(item.Price))
}
