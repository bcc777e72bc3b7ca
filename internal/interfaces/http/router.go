package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tiendas-api/internal/application/retail"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreService *retail.StoreService
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	stores := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreService)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:code", storeHandler.GetByCode)
	stores.Get("/:code/inventory", storeHandler.Inventory)
	stores.Get("/:code/affordable", storeHandler.Affordable)
	stores.Post("/:code/purchase-cost", storeHandler.PurchaseCost)
	stores.Post("/:code/purchases", storeHandler.Purchase)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.StoreService)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:name/cheapest-store", productHandler.CheapestStore)

	api.Post("/inventory/deliveries", productHandler.Deliver)
	api.Post("/purchases/best-store", storeHandler.BestStore)
}
