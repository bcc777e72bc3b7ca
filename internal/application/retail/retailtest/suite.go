// Package retailtest contiene la batería de pruebas que todo backend de persistencia debe superar
// con resultados idénticos a través de retail.StoreService.
package retailtest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend repositorios de un backend vacío, listos para usar.
type Backend struct {
	Stores    repository.StoreRepository
	Products  repository.ProductRepository
	Inventory repository.InventoryRepository
	Tx        retail.TxRunner
}

// Factory crea un backend vacío para cada subtest.
type Factory func(t *testing.T) Backend

func newService(t *testing.T, factory Factory) *retail.StoreService {
	t.Helper()
	b := factory(t)
	return retail.NewStoreService(b.Stores, b.Products, b.Inventory, b.Tx, nil)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Run ejecuta todos los casos contra el backend.
func Run(t *testing.T, factory Factory) {
	cases := []struct {
		name string
		fn   func(t *testing.T, svc *retail.StoreService)
	}{
		{"EscenarioPan", escenarioPan},
		{"IngresosSumanCantidad", ingresosSumanCantidad},
		{"PrecioCentinelaConservaPrecio", precioCentinelaConservaPrecio},
		{"IngresoTiendaInexistente", ingresoTiendaInexistente},
		{"IngresoNoDejaStockNegativo", ingresoNoDejaStockNegativo},
		{"PrimerIngresoSinPrecio", primerIngresoSinPrecio},
		{"RegistroProductoIdempotente", registroProductoIdempotente},
		{"NombreDeProductoEnBlanco", nombreDeProductoEnBlanco},
		{"CostoConErroresDePrecondicion", costoConErroresDePrecondicion},
		{"CompraTodoONada", compraTodoONada},
		{"CompraDescuentaYConservaFilaEnCero", compraDescuentaYConservaFilaEnCero},
		{"TiendaMasBarataYEmpates", tiendaMasBarataYEmpates},
		{"AsequiblesConCeros", asequiblesConCeros},
		{"MejorTiendaParaCompraPorVolumen", mejorTiendaParaCompraPorVolumen},
		{"IdaYVueltaExacta", idaYVueltaExacta},
		{"CodigosUnicosYCrecientes", codigosUnicosYCrecientes},
		{"ComprasConcurrentesNoSobrevenden", comprasConcurrentesNoSobrevenden},
		{"IngresosConcurrentesNoPierdenUnidades", ingresosConcurrentesNoPierdenUnidades},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newService(t, factory))
		})
	}
}

func escenarioPan(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Main", "1 Elm")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Bread", 50, dec("2.00")))

	cheapest, err := svc.FindCheapestStore(ctx, "Bread")
	require.NoError(t, err)
	assert.Equal(t, store.Code, cheapest.Code)

	affordable, err := svc.ComputeAffordable(ctx, store.Code, dec("10.00"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Bread": 5}, affordable)

	cost, err := svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Bread": 5})
	require.NoError(t, err)
	assert.True(t, dec("10.00").Equal(cost), "costo = %s", cost)

	_, err = svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Bread": 51})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func ingresosSumanCantidad(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Centro", "Calle 1")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Arroz", 7, dec("3.10")))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Arroz", 5, dec("3.10")))

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 1, "una sola fila por par tienda+producto")
	assert.Equal(t, 12, items[0].Quantity)
}

func precioCentinelaConservaPrecio(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Norte", "Av 2")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Leche", 10, dec("1.15")))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Leche", 2, decimal.Zero))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Leche", 3, dec("-4")))

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 15, items[0].Quantity)
	assert.True(t, dec("1.15").Equal(items[0].Price), "precio = %s", items[0].Price)

	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Leche", 1, dec("1.20")))
	items, err = svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	assert.True(t, dec("1.20").Equal(items[0].Price), "un precio positivo reemplaza el anterior")
}

func ingresoTiendaInexistente(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	err := svc.ReceiveDelivery(ctx, 424242, "Fantasma", 1, dec("1"))
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "la precondición fallida no debe crear el producto")
}

func ingresoNoDejaStockNegativo(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Sur", "Av 3")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Sal", 2, dec("0.50")))

	err = svc.ReceiveDelivery(ctx, store.Code, "Sal", -3, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	assert.Equal(t, 2, items[0].Quantity)
}

func primerIngresoSinPrecio(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Oeste", "Av 4")
	require.NoError(t, err)
	err = svc.ReceiveDelivery(ctx, store.Code, "Azucar", 5, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func registroProductoIdempotente(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	_, err := svc.RegisterProduct(ctx, "Cafe")
	require.NoError(t, err)
	_, err = svc.RegisterProduct(ctx, "Cafe")
	require.NoError(t, err)
	_, err = svc.RegisterProduct(ctx, "cafe")
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2, "los nombres distinguen mayúsculas")
	assert.Equal(t, "Cafe", products[0].Name)
	assert.Equal(t, "cafe", products[1].Name)

	// Registrado pero sin ingresos: existe, así que el resultado es stock insuficiente y no "no encontrado".
	store, err := svc.RegisterStore(ctx, "Este", "Av 5")
	require.NoError(t, err)
	_, err = svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Cafe": 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func nombreDeProductoEnBlanco(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	for _, name := range []string{"", "  ", "\t"} {
		_, err := svc.RegisterProduct(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre %q", name)
	}

	store, err := svc.RegisterStore(ctx, "Blanco", "Av 0")
	require.NoError(t, err)
	err = svc.ReceiveDelivery(ctx, store.Code, "  ", 1, dec("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func costoConErroresDePrecondicion(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Plaza", "Av 6")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Pan", 5, dec("2")))

	_, err = svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Pan": 1, "Desconocido": 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.CalculatePurchaseCost(ctx, store.Code+999, pricing.Order{"Pan": 1})
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)

	_, err = svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Pan": -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func compraTodoONada(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Mercado", "Av 7")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Pan", 10, dec("2")))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Queso", 1, dec("9.99")))

	_, err = svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Pan": 3, "Queso": 2})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 10, items[0].Quantity, "Pan no debe descontarse si Queso no alcanza")
	assert.Equal(t, 1, items[1].Quantity)
}

func compraDescuentaYConservaFilaEnCero(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Barrio", "Av 8")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Pan", 10, dec("2.00")))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Queso", 2, dec("7.25")))

	total, err := svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Pan": 4, "Queso": 2})
	require.NoError(t, err)
	assert.True(t, dec("22.50").Equal(total), "total = %s", total)

	cost, err := svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Pan": 6})
	require.NoError(t, err)
	assert.True(t, dec("12").Equal(cost))
	_, err = svc.CalculatePurchaseCost(ctx, store.Code, pricing.Order{"Pan": 7})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 2, "la fila en cero se conserva")
	assert.Equal(t, "Queso", items[1].ProductName)
	assert.Equal(t, 0, items[1].Quantity)
	assert.True(t, dec("7.25").Equal(items[1].Price), "la fila en cero conserva su precio")

	affordable, err := svc.ComputeAffordable(ctx, store.Code, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Pan": 6}, affordable, "las filas en cero no son asequibles")

	_, err = svc.FindCheapestStore(ctx, "Queso")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func tiendaMasBarataYEmpates(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	a, err := svc.RegisterStore(ctx, "A", "a")
	require.NoError(t, err)
	b, err := svc.RegisterStore(ctx, "B", "b")
	require.NoError(t, err)
	c, err := svc.RegisterStore(ctx, "C", "c")
	require.NoError(t, err)

	require.NoError(t, svc.ReceiveDelivery(ctx, c.Code, "Te", 1, dec("3")))
	require.NoError(t, svc.ReceiveDelivery(ctx, b.Code, "Te", 1, dec("3")))
	require.NoError(t, svc.ReceiveDelivery(ctx, a.Code, "Te", 1, dec("4")))

	got, err := svc.FindCheapestStore(ctx, "Te")
	require.NoError(t, err)
	assert.Equal(t, b.Code, got.Code, "empate de precio: gana el menor código")
	assert.Equal(t, "B", got.Name)

	_, err = svc.FindCheapestStore(ctx, "Inexistente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func asequiblesConCeros(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Kiosco", "Av 9")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Chicle", 3, dec("0.25")))
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Vino", 10, dec("15.00")))

	got, err := svc.ComputeAffordable(ctx, store.Code, dec("10"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Chicle": 3, "Vino": 0}, got)

	_, err = svc.ComputeAffordable(ctx, store.Code+999, dec("10"))
	assert.ErrorIs(t, err, domain.ErrStoreNotFound)
	_, err = svc.ComputeAffordable(ctx, store.Code, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func mejorTiendaParaCompraPorVolumen(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	a, err := svc.RegisterStore(ctx, "A", "a")
	require.NoError(t, err)
	b, err := svc.RegisterStore(ctx, "B", "b")
	require.NoError(t, err)
	c, err := svc.RegisterStore(ctx, "C", "c")
	require.NoError(t, err)

	require.NoError(t, svc.ReceiveDelivery(ctx, a.Code, "X", 5, dec("10")))
	require.NoError(t, svc.ReceiveDelivery(ctx, b.Code, "X", 5, dec("8")))

	best, total, err := svc.FindBestStoreForBulkPurchase(ctx, pricing.Order{"X": 1})
	require.NoError(t, err)
	assert.Equal(t, b.Code, best.Code)
	assert.True(t, dec("8").Equal(total))

	// C es la única con X e Y; A y B se descartan.
	require.NoError(t, svc.ReceiveDelivery(ctx, c.Code, "X", 5, dec("20")))
	require.NoError(t, svc.ReceiveDelivery(ctx, c.Code, "Y", 5, dec("1")))
	best, _, err = svc.FindBestStoreForBulkPurchase(ctx, pricing.Order{"X": 2, "Y": 1})
	require.NoError(t, err)
	assert.Equal(t, c.Code, best.Code)

	_, _, err = svc.FindBestStoreForBulkPurchase(ctx, pricing.Order{"X": 6})
	assert.ErrorIs(t, err, domain.ErrNoSupplier)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.FindBestStoreForBulkPurchase(ctx, pricing.Order{"Z": 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func idaYVueltaExacta(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	created, err := svc.RegisterStore(ctx, "Tienda Uno", "Calle 5 #10-20, Bogotá")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, created.Code, "Harina de trigo", 9, dec("1234.5678")))

	got, err := svc.GetStore(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	items, err := svc.ListStoreInventory(ctx, created.Code)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.Code, items[0].StoreCode)
	assert.Equal(t, "Harina de trigo", items[0].ProductName)
	assert.Equal(t, 9, items[0].Quantity)
	assert.True(t, dec("1234.5678").Equal(items[0].Price), "precio = %s", items[0].Price)
}

func codigosUnicosYCrecientes(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	var wg sync.WaitGroup
	codes := make(chan int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := svc.RegisterStore(ctx, "Concurrente", "x")
			if assert.NoError(t, err) {
				codes <- s.Code
			}
		}()
	}
	wg.Wait()
	close(codes)

	seen := make(map[int]bool)
	for code := range codes {
		assert.GreaterOrEqual(t, code, 10000)
		assert.False(t, seen[code], "código repetido %d", code)
		seen[code] = true
	}
	assert.Len(t, seen, 10)

	stores, err := svc.ListStores(ctx)
	require.NoError(t, err)
	for i := 1; i < len(stores); i++ {
		assert.Less(t, stores[i-1].Code, stores[i].Code)
	}
}

func comprasConcurrentesNoSobrevenden(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Flash", "Av 10")
	require.NoError(t, err)
	require.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Consola", 10, dec("299.99")))

	var ok, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.ExecutePurchase(ctx, store.Code, pricing.Order{"Consola": 1})
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, ok)
	assert.EqualValues(t, 15, rejected)
	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	assert.Equal(t, 0, items[0].Quantity)
}

func ingresosConcurrentesNoPierdenUnidades(t *testing.T, svc *retail.StoreService) {
	ctx := context.Background()
	store, err := svc.RegisterStore(ctx, "Bodega", "Av 11")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.ReceiveDelivery(ctx, store.Code, "Tornillo", 3, dec("0.05")))
		}()
	}
	wg.Wait()

	items, err := svc.ListStoreInventory(ctx, store.Code)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 60, items[0].Quantity)
}
