package flatfile

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre el archivo de inventario.
// Cada llamada lee el archivo completo; Merge y Upsert lo reescriben bajo el candado exclusivo.
type InventoryRepo struct {
	db *DB
}

// NewInventoryRepository construye el adaptador.
func NewInventoryRepository(db *DB) *InventoryRepo {
	return &InventoryRepo{db: db}
}

// Get obtiene la fila del par tienda+producto.
func (r *InventoryRepo) Get(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	var item *entity.InventoryItem
	err := r.db.view(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		item = t.get(storeCode, productName)
		return nil
	})
	return item, err
}

// GetForUpdate fuera de TxRunner no bloquea nada más allá de la propia lectura; equivale a Get.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	return r.Get(ctx, storeCode, productName)
}

// Merge lee, combina y reescribe el archivo completo.
func (r *InventoryRepo) Merge(ctx context.Context, storeCode int, productName string, quantity int, price decimal.Decimal) error {
	return r.db.update(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		if err := t.merge(storeCode, productName, quantity, price); err != nil {
			return err
		}
		return r.db.saveInventory(t)
	})
}

// Upsert escribe los valores absolutos de la fila.
func (r *InventoryRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	return r.db.update(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		if err := t.upsert(item); err != nil {
			return err
		}
		return r.db.saveInventory(t)
	})
}

// ListByProduct filas del producto por código de tienda ascendente.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productName string) ([]*entity.InventoryItem, error) {
	var items []*entity.InventoryItem
	err := r.db.view(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		items = t.byProduct(productName)
		return nil
	})
	return items, err
}

// ListByStore filas de la tienda por nombre de producto.
func (r *InventoryRepo) ListByStore(ctx context.Context, storeCode int) ([]*entity.InventoryItem, error) {
	var items []*entity.InventoryItem
	err := r.db.view(ctx, func() error {
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		items = t.byStore(storeCode)
		return nil
	})
	return items, err
}

// tableRepo InventoryRepository sobre una tabla ya cargada; solo se usa dentro de TxRunner.Run,
// que sostiene el candado exclusivo y persiste la tabla al terminar.
type tableRepo struct {
	t *inventoryTable
}

var _ repository.InventoryRepository = (*tableRepo)(nil)

func (r *tableRepo) Get(_ context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	return r.t.get(storeCode, productName), nil
}

func (r *tableRepo) GetForUpdate(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	return r.Get(ctx, storeCode, productName)
}

func (r *tableRepo) Merge(_ context.Context, storeCode int, productName string, quantity int, price decimal.Decimal) error {
	return r.t.merge(storeCode, productName, quantity, price)
}

func (r *tableRepo) Upsert(_ context.Context, item *entity.InventoryItem) error {
	return r.t.upsert(item)
}

func (r *tableRepo) ListByProduct(_ context.Context, productName string) ([]*entity.InventoryItem, error) {
	return r.t.byProduct(productName), nil
}

func (r *tableRepo) ListByStore(_ context.Context, storeCode int) ([]*entity.InventoryItem, error) {
	return r.t.byStore(storeCode), nil
}
