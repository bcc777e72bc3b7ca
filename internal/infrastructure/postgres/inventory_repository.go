package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `store_code, product_name, quantity, price`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// Get obtiene la fila del par tienda+producto.
func (r *InventoryRepo) Get(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE store_code = $1 AND product_name = $2`
	return r.getOne(ctx, query, storeCode, productName)
}

// GetForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE). Solo tiene efecto dentro de una tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE store_code = $1 AND product_name = $2 FOR UPDATE`
	return r.getOne(ctx, query, storeCode, productName)
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := r.q.QueryRow(ctx, query, args...).Scan(&it.StoreCode, &it.ProductName, &it.Quantity, &it.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &it, nil
}

// Merge aplica el ingreso en una sola sentencia; los CHECK de la tabla rechazan stock negativo o filas sin precio.
func (r *InventoryRepo) Merge(ctx context.Context, storeCode int, productName string, quantity int, price decimal.Decimal) error {
	query := `
		INSERT INTO inventory_items (store_code, product_name, quantity, price)
		VALUES ($1, $2, $3, GREATEST($4::numeric, 0))
		ON CONFLICT (store_code, product_name) DO UPDATE SET
			quantity = inventory_items.quantity + EXCLUDED.quantity,
			price = CASE WHEN $4::numeric > 0 THEN $4::numeric ELSE inventory_items.price END`
	if _, err := r.q.Exec(ctx, query, storeCode, productName, quantity, price); err != nil {
		if mapped := mapInventoryError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("merge inventory item: %w", err)
	}
	return nil
}

// Upsert escribe cantidad y precio absolutos.
func (r *InventoryRepo) Upsert(ctx context.Context, item *entity.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO inventory_items (store_code, product_name, quantity, price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (store_code, product_name)
		DO UPDATE SET quantity = EXCLUDED.quantity, price = EXCLUDED.price`
	if _, err := r.q.Exec(ctx, query, item.StoreCode, item.ProductName, item.Quantity, item.Price); err != nil {
		if mapped := mapInventoryError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("upsert inventory item: %w", err)
	}
	return nil
}

// ListByProduct lista las filas de un producto por código de tienda.
func (r *InventoryRepo) ListByProduct(ctx context.Context, productName string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE product_name = $1 ORDER BY store_code`
	return r.list(ctx, query, productName)
}

// ListByStore lista las filas de una tienda por nombre de producto.
func (r *InventoryRepo) ListByStore(ctx context.Context, storeCode int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE store_code = $1 ORDER BY product_name COLLATE "C"`
	return r.list(ctx, query, storeCode)
}

func (r *InventoryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		var it entity.InventoryItem
		if err := rows.Scan(&it.StoreCode, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
