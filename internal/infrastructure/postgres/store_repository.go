package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create inserta la tienda; el código lo asigna la columna identidad.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `INSERT INTO stores (name, address) VALUES ($1, $2) RETURNING code`
	if err := r.q.QueryRow(ctx, query, store.Name, store.Address).Scan(&store.Code); err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByCode obtiene una tienda por código.
func (r *StoreRepo) GetByCode(ctx context.Context, code int) (*entity.Store, error) {
	query := `SELECT code, name, address FROM stores WHERE code = $1`
	var s entity.Store
	err := r.q.QueryRow(ctx, query, code).Scan(&s.Code, &s.Name, &s.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// List lista las tiendas por código ascendente.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, address FROM stores ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.Code, &s.Name, &s.Address); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
