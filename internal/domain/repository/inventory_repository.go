package repository

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository define el puerto para consultar/actualizar el inventario por tienda+producto.
// Las implementaciones atadas a una transacción se obtienen vía TxRunner.
type InventoryRepository interface {
	// Get devuelve nil, nil si no hay fila para el par.
	Get(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error)
	// GetForUpdate igual que Get, pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, storeCode int, productName string) (*entity.InventoryItem, error)
	// Merge suma quantity a la fila (la crea si no existe) y reemplaza el precio solo si price > 0.
	// Devuelve domain.ErrInsufficientStock si la cantidad resultante fuese negativa y
	// domain.ErrInvalidPrice si una fila nueva con stock quedaría sin precio positivo.
	Merge(ctx context.Context, storeCode int, productName string, quantity int, price decimal.Decimal) error
	// Upsert escribe los valores absolutos de la fila.
	Upsert(ctx context.Context, item *entity.InventoryItem) error
	// ListByProduct devuelve las filas del producto ordenadas por código de tienda.
	ListByProduct(ctx context.Context, productName string) ([]*entity.InventoryItem, error)
	// ListByStore devuelve las filas de la tienda ordenadas por nombre de producto.
	ListByStore(ctx context.Context, storeCode int) ([]*entity.InventoryItem, error)
}
