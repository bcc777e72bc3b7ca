package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/tiendas-api/internal/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"

	constraintQuantityCheck = "inventory_items_quantity_check"
	constraintPriceCheck    = "inventory_items_price_check"
)

func pgErrorCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// mapInventoryError traduce las violaciones de constraints de inventory_items a errores de dominio.
func mapInventoryError(err error) error {
	pgErr, ok := pgErrorCode(err)
	if !ok {
		return nil
	}
	switch pgErr.Code {
	case codeCheckViolation:
		switch pgErr.ConstraintName {
		case constraintQuantityCheck:
			return domain.ErrInsufficientStock
		case constraintPriceCheck:
			return domain.ErrInvalidPrice
		}
	case codeForeignKeyViolation:
		return domain.ErrNotFound
	}
	return nil
}
