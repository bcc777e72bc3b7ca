package retail

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/jhoicas/tiendas-api/internal/domain/repository"
	"github.com/jhoicas/tiendas-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// StoreService orquesta tiendas, productos e inventario sin conocer el backend concreto.
// No guarda copias entre llamadas: cada consulta vuelve a leer del repositorio.
type StoreService struct {
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	txRunner      TxRunner
	log           *logger.Logger
}

// NewStoreService construye el servicio.
func NewStoreService(
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *StoreService {
	if log == nil {
		log = logger.Nop()
	}
	return &StoreService{
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		txRunner:      txRunner,
		log:           log.Named("retail"),
	}
}

// RegisterStore persiste una tienda nueva; el backend asigna el código.
func (s *StoreService) RegisterStore(ctx context.Context, name, address string) (*entity.Store, error) {
	store := &entity.Store{Name: name, Address: address}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, err
	}
	s.log.Info().Int("store_code", store.Code).Str("name", store.Name).Msg("tienda registrada")
	return store, nil
}

// RegisterProduct persiste un producto. Registrar un nombre existente no es error.
func (s *StoreService) RegisterProduct(ctx context.Context, name string) (*entity.Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{Name: name}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ReceiveDelivery registra un ingreso de mercancía en una tienda. Si el producto no existe se crea.
// price <= 0 conserva el precio actual de la fila.
func (s *StoreService) ReceiveDelivery(ctx context.Context, storeCode int, productName string, quantity int, price decimal.Decimal) error {
	if strings.TrimSpace(productName) == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.requireStore(ctx, storeCode); err != nil {
		return err
	}
	product, err := s.productRepo.GetByName(ctx, productName)
	if err != nil {
		return err
	}
	if product == nil {
		if _, err := s.RegisterProduct(ctx, productName); err != nil {
			return err
		}
	}
	if err := s.inventoryRepo.Merge(ctx, storeCode, productName, quantity, price); err != nil {
		return err
	}
	s.log.Debug().
		Int("store_code", storeCode).
		Str("product", productName).
		Int("quantity", quantity).
		Str("price", price.String()).
		Msg("ingreso registrado")
	return nil
}

// GetStore devuelve la tienda o domain.ErrStoreNotFound.
func (s *StoreService) GetStore(ctx context.Context, code int) (*entity.Store, error) {
	return s.requireStore(ctx, code)
}

// ListStores lista las tiendas por código ascendente.
func (s *StoreService) ListStores(ctx context.Context) ([]*entity.Store, error) {
	return s.storeRepo.List(ctx)
}

// ListProducts lista los productos registrados por nombre.
func (s *StoreService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	return s.productRepo.List(ctx)
}

// ListStoreInventory devuelve todas las filas de inventario de una tienda, incluidas las que están en cero.
func (s *StoreService) ListStoreInventory(ctx context.Context, storeCode int) ([]*entity.InventoryItem, error) {
	if _, err := s.requireStore(ctx, storeCode); err != nil {
		return nil, err
	}
	return s.inventoryRepo.ListByStore(ctx, storeCode)
}

func (s *StoreService) requireStore(ctx context.Context, code int) (*entity.Store, error) {
	store, err := s.storeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrStoreNotFound, code)
	}
	return store, nil
}

func (s *StoreService) requireProducts(ctx context.Context, names []string) error {
	for _, name := range names {
		product, err := s.productRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %q", domain.ErrProductNotFound, name)
		}
	}
	return nil
}
