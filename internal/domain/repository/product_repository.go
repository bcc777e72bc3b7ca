package repository

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create es idempotente: registrar un nombre existente no falla ni duplica.
	Create(ctx context.Context, product *entity.Product) error
	// GetByName devuelve nil, nil si el producto no existe.
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	// List devuelve los productos ordenados por nombre.
	List(ctx context.Context) ([]*entity.Product, error)
}
