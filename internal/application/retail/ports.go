package retail

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain/repository"
)

// TxRunner ejecuta una función de forma atómica, pasando un repositorio de inventario atado a esa unidad de trabajo.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(inventoryRepo repository.InventoryRepository) error) error
}
