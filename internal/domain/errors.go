package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidPrice      = errors.New("precio inválido")

	// ErrStoreNotFound y ErrProductNotFound cumplen errors.Is(err, ErrNotFound).
	ErrStoreNotFound   = fmt.Errorf("tienda: %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("producto: %w", ErrNotFound)

	// ErrNoSupplier ninguna tienda surte un pedido completo; cumple ErrNotFound y ErrInsufficientStock.
	ErrNoSupplier = fmt.Errorf("%w: %w", ErrNotFound, ErrInsufficientStock)
)
