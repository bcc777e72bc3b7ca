package entity

import (
	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/shopspring/decimal"
)

// InventoryItem representa el stock de un producto en una tienda (una fila por par tienda+producto).
// Quantity nunca es negativa; una fila en cero se conserva con su último precio.
type InventoryItem struct {
	StoreCode   int
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// InStock indica si la fila participa en consultas de precio (cantidad > 0).
func (i *InventoryItem) InStock() bool {
	return i != nil && i.Quantity > 0
}

// MergeDelivery aplica un ingreso: suma la cantidad y solo reemplaza el precio si price > 0
// (precio <= 0 significa "conservar el precio actual").
func (i *InventoryItem) MergeDelivery(quantity int, price decimal.Decimal) {
	i.Quantity += quantity
	if price.GreaterThan(decimal.Zero) {
		i.Price = price
	}
}

// Validate verifica los invariantes de la fila: cantidad no negativa y precio positivo si hay stock.
func (i *InventoryItem) Validate() error {
	if i.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	if i.Quantity > 0 && !i.Price.IsPositive() {
		return domain.ErrInvalidPrice
	}
	return nil
}
