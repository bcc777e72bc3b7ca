package retail

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// FindCheapestStore devuelve la tienda con stock del producto al menor precio.
// Empates: gana el menor código de tienda. Sin oferta devuelve domain.ErrNotFound.
func (s *StoreService) FindCheapestStore(ctx context.Context, productName string) (*entity.Store, error) {
	items, err := s.inventoryRepo.ListByProduct(ctx, productName)
	if err != nil {
		return nil, err
	}
	best := pricing.CheapestOffer(items)
	if best == nil {
		return nil, domain.ErrNotFound
	}
	return s.requireStore(ctx, best.StoreCode)
}

// ComputeAffordable devuelve producto -> cantidad máxima comprable con budget en la tienda.
func (s *StoreService) ComputeAffordable(ctx context.Context, storeCode int, budget decimal.Decimal) (map[string]int, error) {
	if budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.requireStore(ctx, storeCode); err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.ListByStore(ctx, storeCode)
	if err != nil {
		return nil, err
	}
	return pricing.Affordable(items, budget)
}
