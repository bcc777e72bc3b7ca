package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tiendas-api/internal/application/dto"
	"github.com/jhoicas/tiendas-api/internal/application/retail"
	"github.com/jhoicas/tiendas-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// StoreHandler maneja las peticiones HTTP de tiendas, inventario y compras.
type StoreHandler struct {
	svc *retail.StoreService
}

// NewStoreHandler construye el handler.
func NewStoreHandler(svc *retail.StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar tienda
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Nombre y dirección"
// @Success      201   {object}  dto.StoreResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	store, err := h.svc.RegisterStore(c.UserContext(), in.Name, in.Address)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.StoreToResponse(store))
}

// List godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Produce      json
// @Success      200  {array}  dto.StoreResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	stores, err := h.svc.ListStores(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, dto.StoreToResponse(s))
	}
	return c.JSON(out)
}

// GetByCode godoc
// @Summary      Obtener tienda por código
// @Tags         stores
// @Produce      json
// @Param        code  path  int  true  "Código de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{code} [get]
func (h *StoreHandler) GetByCode(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return badStoreCode(c)
	}
	store, err := h.svc.GetStore(c.UserContext(), code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StoreToResponse(store))
}

// Inventory godoc
// @Summary      Inventario de una tienda (incluye filas en cero)
// @Tags         stores
// @Produce      json
// @Param        code  path  int  true  "Código de la tienda"
// @Success      200  {array}  dto.InventoryItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{code}/inventory [get]
func (h *StoreHandler) Inventory(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return badStoreCode(c)
	}
	items, err := h.svc.ListStoreInventory(c.UserContext(), code)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.InventoryItemToResponse(it))
	}
	return c.JSON(out)
}

// Affordable godoc
// @Summary      Cantidades comprables con un presupuesto
// @Tags         stores
// @Produce      json
// @Param        code    path   int     true  "Código de la tienda"
// @Param        budget  query  string  true  "Presupuesto (decimal)"
// @Success      200  {object}  dto.AffordableResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{code}/affordable [get]
func (h *StoreHandler) Affordable(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return badStoreCode(c)
	}
	budget, err := decimal.NewFromString(c.Query("budget"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "budget inválido"})
	}
	items, err := h.svc.ComputeAffordable(c.UserContext(), code, budget)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AffordableResponse{StoreCode: code, Budget: budget, Items: items})
}

// PurchaseCost godoc
// @Summary      Costo de un pedido en una tienda (sin modificar inventario)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        code  path  int               true  "Código de la tienda"
// @Param        body  body  dto.OrderRequest  true  "Pedido"
// @Success      200  {object}  dto.PurchaseCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{code}/purchase-cost [post]
func (h *StoreHandler) PurchaseCost(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return badStoreCode(c)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	total, err := h.svc.CalculatePurchaseCost(c.UserContext(), code, pricing.Order(in.Items))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.PurchaseCostResponse{StoreCode: code, Total: total})
}

// Purchase godoc
// @Summary      Ejecutar compra (todo o nada)
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        code  path  int               true  "Código de la tienda"
// @Param        body  body  dto.OrderRequest  true  "Pedido"
// @Success      201  {object}  dto.PurchaseCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stores/{code}/purchases [post]
func (h *StoreHandler) Purchase(c *fiber.Ctx) error {
	code, err := c.ParamsInt("code")
	if err != nil {
		return badStoreCode(c)
	}
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	total, err := h.svc.ExecutePurchase(c.UserContext(), code, pricing.Order(in.Items))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PurchaseCostResponse{StoreCode: code, Total: total})
}

// BestStore godoc
// @Summary      Tienda más barata que surte el pedido completo
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrderRequest  true  "Pedido"
// @Success      200  {object}  dto.BestStoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/best-store [post]
func (h *StoreHandler) BestStore(c *fiber.Ctx) error {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	store, total, err := h.svc.FindBestStoreForBulkPurchase(c.UserContext(), pricing.Order(in.Items))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.BestStoreResponse{Store: dto.StoreToResponse(store), Total: total})
}
