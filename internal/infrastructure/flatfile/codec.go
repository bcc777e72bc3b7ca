package flatfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Encabezados fijos de cada archivo.
const (
	storesHeader    = "StoreCode,StoreName,Address"
	inventoryHeader = "StoreCode,ProductName,Quantity,Price"
	productsHeader  = "ProductName"
)

// Sin comillas ni escapes: el nombre de tienda no puede llevar comas; la dirección (última columna) sí.
// En inventario el nombre de producto se delimita por la primera coma y las dos últimas.

func encodeStore(s *entity.Store) (string, error) {
	if strings.Contains(s.Name, ",") || strings.ContainsAny(s.Name+s.Address, "\r\n") {
		return "", fmt.Errorf("%w: el nombre de la tienda no admite comas ni saltos de línea", domain.ErrInvalidInput)
	}
	return fmt.Sprintf("%d,%s,%s", s.Code, s.Name, s.Address), nil
}

func decodeStore(line string) (*entity.Store, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("fila de tienda inválida: %q", line)
	}
	code, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return nil, fmt.Errorf("código de tienda inválido en %q: %w", line, err)
	}
	return &entity.Store{Code: code, Name: fields[1], Address: fields[2]}, nil
}

func encodeItem(i *entity.InventoryItem) (string, error) {
	if strings.ContainsAny(i.ProductName, "\r\n") {
		return "", fmt.Errorf("%w: el nombre del producto no admite saltos de línea", domain.ErrInvalidInput)
	}
	// decimal.String no depende de la configuración regional: siempre punto decimal.
	return fmt.Sprintf("%d,%s,%d,%s", i.StoreCode, i.ProductName, i.Quantity, i.Price.String()), nil
}

func decodeItem(line string) (*entity.InventoryItem, error) {
	first := strings.Index(line, ",")
	last := strings.LastIndex(line, ",")
	if first < 0 || last <= first {
		return nil, fmt.Errorf("fila de inventario inválida: %q", line)
	}
	middle := line[first+1 : last]
	qtySep := strings.LastIndex(middle, ",")
	if qtySep < 0 {
		return nil, fmt.Errorf("fila de inventario inválida: %q", line)
	}

	code, err := strconv.Atoi(strings.TrimSpace(line[:first]))
	if err != nil {
		return nil, fmt.Errorf("código de tienda inválido en %q: %w", line, err)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(middle[qtySep+1:]))
	if err != nil {
		return nil, fmt.Errorf("cantidad inválida en %q: %w", line, err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(line[last+1:]))
	if err != nil {
		return nil, fmt.Errorf("precio inválido en %q: %w", line, err)
	}
	return &entity.InventoryItem{
		StoreCode:   code,
		ProductName: middle[:qtySep],
		Quantity:    qty,
		Price:       price,
	}, nil
}

func encodeProduct(p *entity.Product) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", fmt.Errorf("%w: nombre de producto vacío", domain.ErrInvalidInput)
	}
	if strings.ContainsAny(p.Name, "\r\n") {
		return "", fmt.Errorf("%w: el nombre del producto no admite saltos de línea", domain.ErrInvalidInput)
	}
	return p.Name, nil
}
