package repository

import (
	"context"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
type StoreRepository interface {
	// Create persiste la tienda y le asigna un código único (store.Code se sobrescribe).
	Create(ctx context.Context, store *entity.Store) error
	// GetByCode devuelve nil, nil si la tienda no existe.
	GetByCode(ctx context.Context, code int) (*entity.Store, error)
	// List devuelve todas las tiendas ordenadas por código ascendente.
	List(ctx context.Context) ([]*entity.Store, error)
}
