package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/tiendas-api/internal/application/dto"
	"github.com/jhoicas/tiendas-api/internal/application/retail"
)

// ProductHandler maneja las peticiones HTTP de productos e ingresos de mercancía.
type ProductHandler struct {
	svc *retail.StoreService
}

// NewProductHandler construye el handler.
func NewProductHandler(svc *retail.StoreService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// Create godoc
// @Summary      Registrar producto (idempotente)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Nombre del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	p, err := h.svc.RegisterProduct(c.UserContext(), in.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProductResponse{Name: p.Name})
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.svc.ListProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{Name: p.Name})
	}
	return c.JSON(out)
}

// CheapestStore godoc
// @Summary      Tienda con el menor precio para un producto en stock
// @Tags         products
// @Produce      json
// @Param        name  path  string  true  "Nombre del producto"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{name}/cheapest-store [get]
func (h *ProductHandler) CheapestStore(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre de producto inválido"})
	}
	store, err := h.svc.FindCheapestStore(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StoreToResponse(store))
}

// Deliver godoc
// @Summary      Registrar ingreso de mercancía
// @Description  Suma la cantidad a la fila tienda+producto; price <= 0 conserva el precio actual.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DeliveryRequest  true  "store_code, product_name, quantity, price"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/deliveries [post]
func (h *ProductHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.svc.ReceiveDelivery(c.UserContext(), in.StoreCode, in.ProductName, in.Quantity, in.Price); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "ingreso registrado"})
}
