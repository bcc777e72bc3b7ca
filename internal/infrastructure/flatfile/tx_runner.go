package flatfile

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
)

var _ retail.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con el candado exclusivo tomado sobre una copia en memoria del inventario.
// Solo si fn termina sin error la copia se persiste (una única reescritura atómica); si falla se descarta.
type TxRunner struct {
	db *DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn de forma atómica respecto de las demás escrituras del proceso.
func (r *TxRunner) Run(ctx context.Context, fn func(inventoryRepo repository.InventoryRepository) error) error {
	return r.db.update(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		if err := fn(&tableRepo{t: t}); err != nil {
			return err
		}
		return r.db.saveInventory(t)
	})
}
