package retail_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/jhoicas/tiendas-api/internal/infrastructure/flatfile"
	"github.com/jhoicas/tiendas-api/pkg/logger"
)

var errCommit = errors.New("commit falló")

// failingTx ejecuta fn contra el runner real pero descarta el resultado como si el commit fallara.
type failingTx struct {
	inner retail.TxRunner
}

func (f failingTx) Run(ctx context.Context, fn func(repository.InventoryRepository) error) error {
	return f.inner.Run(ctx, func(repo repository.InventoryRepository) error {
		if err := fn(repo); err != nil {
			return err
		}
		return errCommit
	})
}

func newFlatFileService(t *testing.T, tx func(*flatfile.DB) retail.TxRunner, log *logger.Logger) *retail.StoreService {
	t.Helper()
	db, err := flatfile.Open(afero.NewMemMapFs(), flatfile.Paths{
		Stores:    "data/stores.csv",
		Inventory: "data/inventory.csv",
		Products:  "data/products.csv",
	})
	require.NoError(t, err)
	return retail.NewStoreService(
		flatfile.NewStoreRepository(db),
		flatfile.NewProductRepository(db),
		flatfile.NewInventoryRepository(db),
		tx(db),
		log,
	)
}

func TestExecutePurchase_ErrorDeCommitNoDescuenta(t *testing.T) {
	svc := newFlatFileService(t, func(db *flatfile.DB) retail.TxRunner {
		return failingTx{inner: flatfile.NewTxRunner(db)}
	}, nil)
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Main", "x")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Bread", 5, decimal.NewFromInt(2)))

	_, err = svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Bread": 3})
	require.ErrorIs(t, err, errCommit)

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestStoreService_RegistraEventos(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	svc := newFlatFileService(t, func(db *flatfile.DB) retail.TxRunner { return flatfile.NewTxRunner(db) }, log)
	ctx := context.Background()

	store, err := svc.RegisterStore(ctx, "Main", "x")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Bread", 5, decimal.NewFromInt(2)))
	_, err = svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Bread": 1})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"component":"retail"`)
	assert.Contains(t, out, "tienda registrada")
	assert.Contains(t, out, "compra ejecutada")
	// El ingreso se registra en debug y no aparece en nivel info.
	assert.NotContains(t, out, "ingreso registrado")
}
