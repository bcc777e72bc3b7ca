package flatfile

import (
	"context"
	"sort"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
)

// FirstStoreCode primer código asignado cuando el archivo de tiendas está vacío.
const FirstStoreCode = 10000

var _ repository.StoreRepository = (*StoreRepo)(nil)

// StoreRepo implementación de StoreRepository sobre el archivo de tiendas.
type StoreRepo struct {
	db *DB
}

// NewStoreRepository construye el adaptador.
func NewStoreRepository(db *DB) *StoreRepo {
	return &StoreRepo{db: db}
}

// Create asigna el siguiente código (máximo existente + 1) y agrega la línea al archivo.
// Lectura del máximo y escritura ocurren bajo el mismo candado, así que los códigos no se repiten.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	return r.db.update(ctx, func() error {
		stores, err := r.load()
		if err != nil {
			return err
		}
		next := FirstStoreCode
		for _, s := range stores {
			if s.Code >= next {
				next = s.Code + 1
			}
		}
		candidate := *store
		candidate.Code = next
		record, err := encodeStore(&candidate)
		if err != nil {
			return err
		}
		if err := r.db.appendRecord(r.db.paths.Stores, record); err != nil {
			return err
		}
		store.Code = next
		return nil
	})
}

// GetByCode obtiene una tienda por código.
func (r *StoreRepo) GetByCode(ctx context.Context, code int) (*entity.Store, error) {
	var found *entity.Store
	err := r.db.view(ctx, func() error {
		stores, err := r.load()
		if err != nil {
			return err
		}
		for _, s := range stores {
			if s.Code == code {
				found = s
				return nil
			}
		}
		return nil
	})
	return found, err
}

// List lista las tiendas por código ascendente.
func (r *StoreRepo) List(ctx context.Context) ([]*entity.Store, error) {
	var stores []*entity.Store
	err := r.db.view(ctx, func() error {
		var err error
		stores, err = r.load()
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(stores, func(i, j int) bool { return stores[i].Code < stores[j].Code })
	return stores, nil
}

func (r *StoreRepo) load() ([]*entity.Store, error) {
	records, err := r.db.readRecords(r.db.paths.Stores, storesHeader)
	if err != nil {
		return nil, err
	}
	stores := make([]*entity.Store, 0, len(records))
	for _, rec := range records {
		s, err := decodeStore(rec)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, nil
}
