// Package pricing contiene los algoritmos de precio independientes del backend:
// tienda más barata, cantidades asequibles con un presupuesto y costo de una compra.
// Todas las funciones son puras y operan sobre filas ya leídas del repositorio.
package pricing

import (
	"sort"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Order cantidades solicitadas por nombre de producto.
type Order map[string]int

// Names devuelve los productos del pedido en orden lexicográfico.
// Los backends bloquean filas en este orden para evitar interbloqueos entre compras concurrentes.
func (o Order) Names() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate rechaza pedidos vacíos o con cantidades no positivas.
func (o Order) Validate() error {
	if len(o) == 0 {
		return domain.ErrInvalidInput
	}
	for _, qty := range o {
		if qty <= 0 {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// CheapestOffer devuelve la fila con stock y menor precio. Las filas deben venir ordenadas por código
// de tienda ascendente: ante empate gana la primera (menor código). Devuelve nil si ninguna tiene stock.
func CheapestOffer(items []*entity.InventoryItem) *entity.InventoryItem {
	var best *entity.InventoryItem
	for _, item := range items {
		if !item.InStock() {
			continue
		}
		if best == nil || item.Price.LessThan(best.Price) {
			best = item
		}
	}
	return best
}

// MaxAffordable calcula min(stock, floor(budget / price)) para una fila con stock.
func MaxAffordable(item *entity.InventoryItem, budget decimal.Decimal) (int, error) {
	if budget.IsNegative() {
		return 0, domain.ErrInvalidInput
	}
	if !item.Price.IsPositive() {
		return 0, domain.ErrInvalidPrice
	}
	// QuoRem con precisión 0 da el cociente entero exacto; budget >= 0 y price > 0, así que trunca = floor.
	units, _ := budget.QuoRem(item.Price, 0)
	onHand := decimal.NewFromInt(int64(item.Quantity))
	if units.GreaterThan(onHand) {
		return item.Quantity, nil
	}
	return int(units.IntPart()), nil
}

// Affordable devuelve, para cada fila con stock de una tienda, la cantidad máxima comprable con budget.
// Los productos con cantidad asequible 0 se incluyen en el resultado.
func Affordable(items []*entity.InventoryItem, budget decimal.Decimal) (map[string]int, error) {
	if budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	result := make(map[string]int, len(items))
	for _, item := range items {
		if !item.InStock() {
			continue
		}
		qty, err := MaxAffordable(item, budget)
		if err != nil {
			return nil, err
		}
		result[item.ProductName] = qty
	}
	return result, nil
}

// PurchaseCost suma price*cantidad de cada producto del pedido usando las filas de una sola tienda
// (indexadas por nombre). Si algún producto falta o no alcanza, devuelve domain.ErrInsufficientStock
// sin resultado parcial.
func PurchaseCost(items map[string]*entity.InventoryItem, order Order) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, name := range order.Names() {
		qty := order[name]
		item, ok := items[name]
		if !ok || item == nil || item.Quantity < qty {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total, nil
}

// IndexByProduct indexa filas por nombre de producto.
func IndexByProduct(items []*entity.InventoryItem) map[string]*entity.InventoryItem {
	idx := make(map[string]*entity.InventoryItem, len(items))
	for _, item := range items {
		idx[item.ProductName] = item
	}
	return idx
}
