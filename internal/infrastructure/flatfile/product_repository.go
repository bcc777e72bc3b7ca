package flatfile

import (
	"context"
	"sort"

	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre el archivo de productos.
// Un producto también se considera registrado si aparece en el inventario (archivos previos a products.csv).
type ProductRepo struct {
	db *DB
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create agrega el producto si aún no existe.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.db.update(ctx, func() error {
		exists, err := r.exists(product.Name)
		if err != nil || exists {
			return err
		}
		record, err := encodeProduct(product)
		if err != nil {
			return err
		}
		return r.db.appendRecord(r.db.paths.Products, record)
	})
}

// GetByName obtiene un producto por nombre exacto.
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*entity.Product, error) {
	var found *entity.Product
	err := r.db.view(ctx, func() error {
		exists, err := r.exists(name)
		if err != nil {
			return err
		}
		if exists {
			found = &entity.Product{Name: name}
		}
		return nil
	})
	return found, err
}

// List lista los productos por nombre.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	var names []string
	err := r.db.view(ctx, func() error {
		seen := make(map[string]struct{})
		records, err := r.db.readRecords(r.db.paths.Products, productsHeader)
		if err != nil {
			return err
		}
		t, err := r.db.loadInventory()
		if err != nil {
			return err
		}
		for _, name := range records {
			seen[name] = struct{}{}
		}
		for _, item := range t.rows {
			seen[item.ProductName] = struct{}{}
		}
		for name := range seen {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	products := make([]*entity.Product, 0, len(names))
	for _, name := range names {
		products = append(products, &entity.Product{Name: name})
	}
	return products, nil
}

func (r *ProductRepo) exists(name string) (bool, error) {
	records, err := r.db.readRecords(r.db.paths.Products, productsHeader)
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec == name {
			return true, nil
		}
	}
	t, err := r.db.loadInventory()
	if err != nil {
		return false, err
	}
	return t.hasProduct(name), nil
}
