package retail

import (
	"context"
	"errors"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CalculatePurchaseCost calcula el costo total del pedido en una tienda.
// Devuelve domain.ErrInsufficientStock si algún producto no alcanza (sin resultado parcial).
func (s *StoreService) CalculatePurchaseCost(ctx context.Context, storeCode int, order pricing.Order) (decimal.Decimal, error) {
	if err := s.checkOrder(ctx, order); err != nil {
		return decimal.Zero, err
	}
	if _, err := s.requireStore(ctx, storeCode); err != nil {
		return decimal.Zero, err
	}
	items, err := s.inventoryRepo.ListByStore(ctx, storeCode)
	if err != nil {
		return decimal.Zero, err
	}
	return pricing.PurchaseCost(pricing.IndexByProduct(items), order)
}

// ExecutePurchase verifica y descuenta el pedido en una sola unidad atómica: bloquea cada fila
// (en orden de nombre), valida el stock de todas y solo entonces descuenta. Devuelve el total cobrado.
func (s *StoreService) ExecutePurchase(ctx context.Context, storeCode int, order pricing.Order) (decimal.Decimal, error) {
	if err := s.checkOrder(ctx, order); err != nil {
		return decimal.Zero, err
	}
	if _, err := s.requireStore(ctx, storeCode); err != nil {
		return decimal.Zero, err
	}

	var total decimal.Decimal
	err := s.txRunner.Run(ctx, func(inventoryRepo repository.InventoryRepository) error {
		locked := make(map[string]*entity.InventoryItem, len(order))
		for _, name := range order.Names() {
			item, err := inventoryRepo.GetForUpdate(ctx, storeCode, name)
			if err != nil {
				return err
			}
			if item != nil {
				locked[name] = item
			}
		}
		cost, err := pricing.PurchaseCost(locked, order)
		if err != nil {
			return err
		}
		for _, name := range order.Names() {
			item := locked[name]
			item.Quantity -= order[name]
			if err := inventoryRepo.Upsert(ctx, item); err != nil {
				return err
			}
		}
		total = cost
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.log.Debug().Int("store_code", storeCode).Msg("compra rechazada por stock insuficiente")
		}
		return decimal.Zero, err
	}

	s.log.Info().
		Int("store_code", storeCode).
		Int("products", len(order)).
		Str("total", total.String()).
		Msg("compra ejecutada")
	return total, nil
}

// FindBestStoreForBulkPurchase devuelve la tienda que surte el pedido completo al menor costo total.
// Las tiendas que no pueden surtirlo se descartan; empates: gana el menor código.
// Si ninguna tienda puede, devuelve domain.ErrNoSupplier.
func (s *StoreService) FindBestStoreForBulkPurchase(ctx context.Context, order pricing.Order) (*entity.Store, decimal.Decimal, error) {
	if err := s.checkOrder(ctx, order); err != nil {
		return nil, decimal.Zero, err
	}

	// Una lectura por producto: storeCode -> producto -> fila.
	byStore := make(map[int]map[string]*entity.InventoryItem)
	for _, name := range order.Names() {
		items, err := s.inventoryRepo.ListByProduct(ctx, name)
		if err != nil {
			return nil, decimal.Zero, err
		}
		for _, item := range items {
			if byStore[item.StoreCode] == nil {
				byStore[item.StoreCode] = make(map[string]*entity.InventoryItem, len(order))
			}
			byStore[item.StoreCode][name] = item
		}
	}

	stores, err := s.storeRepo.List(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	var (
		best     *entity.Store
		bestCost decimal.Decimal
	)
	for _, store := range stores {
		cost, err := pricing.PurchaseCost(byStore[store.Code], order)
		if errors.Is(err, domain.ErrInsufficientStock) {
			continue
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		if best == nil || cost.LessThan(bestCost) {
			best, bestCost = store, cost
		}
	}
	if best == nil {
		return nil, decimal.Zero, domain.ErrNoSupplier
	}
	return best, bestCost, nil
}

// checkOrder valida el pedido y que todos los productos estén registrados, antes de cualquier escritura.
func (s *StoreService) checkOrder(ctx context.Context, order pricing.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return s.requireProducts(ctx, order.Names())
}
