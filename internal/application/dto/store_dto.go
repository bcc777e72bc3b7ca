package dto

import (
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateStoreRequest entrada para registrar una tienda.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// StoreToResponse mapea entidad a DTO.
func StoreToResponse(s *entity.Store) StoreResponse {
	return StoreResponse{Code: s.Code, Name: s.Name, Address: s.Address}
}

// CreateProductRequest entrada para registrar un producto.
type CreateProductRequest struct {
	Name string `json:"name"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	Name string `json:"name"`
}

// DeliveryRequest ingreso de mercancía. Price <= 0 conserva el precio actual.
type DeliveryRequest struct {
	StoreCode   int             `json:"store_code"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InventoryItemResponse fila de inventario de una tienda.
type InventoryItemResponse struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// InventoryItemToResponse mapea entidad a DTO.
func InventoryItemToResponse(i *entity.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{ProductName: i.ProductName, Quantity: i.Quantity, Price: i.Price}
}

// OrderRequest pedido: nombre de producto -> cantidad.
type OrderRequest struct {
	Items map[string]int `json:"items"`
}

// PurchaseCostResponse costo total de un pedido en una tienda.
type PurchaseCostResponse struct {
	StoreCode int             `json:"store_code"`
	Total     decimal.Decimal `json:"total"`
}

// BestStoreResponse tienda más barata para un pedido completo.
type BestStoreResponse struct {
	Store StoreResponse   `json:"store"`
	Total decimal.Decimal `json:"total"`
}

// AffordableResponse cantidades comprables por producto con un presupuesto.
type AffordableResponse struct {
	StoreCode int             `json:"store_code"`
	Budget    decimal.Decimal `json:"budget"`
	Items     map[string]int  `json:"items"`
}
