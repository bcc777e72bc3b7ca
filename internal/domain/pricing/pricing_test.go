package pricing_test

import (
	"testing"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(store int, name string, qty int, price string) *entity.InventoryItem {
	return &entity.InventoryItem{
		StoreCode:   store,
		ProductName: name,
		Quantity:    qty,
		Price:       decimal.RequireFromString(price),
	}
}

func TestCheapestOffer_IgnoraFilasSinStock(t *testing.T) {
	items := []*entity.InventoryItem{
		item(10000, "Pan", 0, "1.00"),
		item(10001, "Pan", 5, "2.50"),
		item(10002, "Pan", 3, "2.00"),
	}
	best := pricing.CheapestOffer(items)
	require.NotNil(t, best)
	assert.Equal(t, 10002, best.StoreCode)
}

func TestCheapestOffer_EmpateGanaMenorCodigo(t *testing.T) {
	items := []*entity.InventoryItem{
		item(10000, "Pan", 1, "2.00"),
		item(10001, "Pan", 1, "2.00"),
	}
	assert.Equal(t, 10000, pricing.CheapestOffer(items).StoreCode)
}

func TestCheapestOffer_SinStockDevuelveNil(t *testing.T) {
	assert.Nil(t, pricing.CheapestOffer([]*entity.InventoryItem{item(10000, "Pan", 0, "2.00")}))
	assert.Nil(t, pricing.CheapestOffer(nil))
}

func TestMaxAffordable(t *testing.T) {
	cases := []struct {
		name   string
		item   *entity.InventoryItem
		budget string
		want   int
	}{
		{"limitado por presupuesto", item(1, "Pan", 50, "2.00"), "10.00", 5},
		{"limitado por stock", item(1, "Pan", 3, "2.00"), "100", 3},
		{"redondea hacia abajo", item(1, "Pan", 50, "3.00"), "10.00", 3},
		{"presupuesto insuficiente", item(1, "Pan", 50, "3.00"), "2.99", 0},
		{"decimales exactos", item(1, "Leche", 50, "0.10"), "0.30", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pricing.MaxAffordable(tc.item, decimal.RequireFromString(tc.budget))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.LessOrEqual(t, got, tc.item.Quantity)
		})
	}
}

func TestMaxAffordable_PrecioCeroEsError(t *testing.T) {
	_, err := pricing.MaxAffordable(item(1, "Pan", 5, "0"), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestAffordable_IncluyeCerosYExcluyeSinStock(t *testing.T) {
	items := []*entity.InventoryItem{
		item(1, "Pan", 50, "2.00"),
		item(1, "Queso", 4, "25.00"),
		item(1, "Vino", 0, "1.00"),
	}
	got, err := pricing.Affordable(items, decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Pan": 5, "Queso": 0}, got)
}

func TestAffordable_PresupuestoNegativo(t *testing.T) {
	_, err := pricing.Affordable(nil, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPurchaseCost(t *testing.T) {
	idx := pricing.IndexByProduct([]*entity.InventoryItem{
		item(1, "Pan", 50, "2.00"),
		item(1, "Leche", 10, "1.15"),
	})

	total, err := pricing.PurchaseCost(idx, pricing.Order{"Pan": 5, "Leche": 3})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("13.45").Equal(total), "total = %s", total)

	_, err = pricing.PurchaseCost(idx, pricing.Order{"Pan": 51})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = pricing.PurchaseCost(idx, pricing.Order{"Pan": 1, "Queso": 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "un producto ausente invalida todo el pedido")
}

func TestOrder_Validate(t *testing.T) {
	assert.NoError(t, pricing.Order{"Pan": 1}.Validate())
	assert.ErrorIs(t, pricing.Order{}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, pricing.Order{"Pan": 0}.Validate(), domain.ErrInvalidInput)
	assert.ErrorIs(t, pricing.Order{"Pan": -2}.Validate(), domain.ErrInvalidInput)
}

func TestOrder_NamesOrdenados(t *testing.T) {
	assert.Equal(t, []string{"Arroz", "Leche", "Pan"}, pricing.Order{"Pan": 1, "Arroz": 1, "Leche": 1}.Names())
}
