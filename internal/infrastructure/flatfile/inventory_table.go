package flatfile

import (
	"sort"

	"github.com/jhoicas/tiendas-api/internal/domain"
	"github.com/jhoicas/tiendas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// inventoryTable copia en memoria del archivo de inventario, en el orden de las líneas.
type inventoryTable struct {
	rows []*entity.InventoryItem
}

func (db *DB) loadInventory() (*inventoryTable, error) {
	records, err := db.readRecords(db.paths.Inventory, inventoryHeader)
	if err != nil {
		return nil, err
	}
	t := &inventoryTable{rows: make([]*entity.InventoryItem, 0, len(records))}
	for _, r := range records {
		item, err := decodeItem(r)
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, item)
	}
	return t, nil
}

func (db *DB) saveInventory(t *inventoryTable) error {
	records := make([]string, 0, len(t.rows))
	for _, item := range t.rows {
		r, err := encodeItem(item)
		if err != nil {
			return err
		}
		records = append(records, r)
	}
	return db.rewrite(db.paths.Inventory, inventoryHeader, records)
}

func (t *inventoryTable) find(storeCode int, productName string) *entity.InventoryItem {
	for _, item := range t.rows {
		if item.StoreCode == storeCode && item.ProductName == productName {
			return item
		}
	}
	return nil
}

// merge reemplaza la línea del par si existe o agrega una nueva al final.
func (t *inventoryTable) merge(storeCode int, productName string, quantity int, price decimal.Decimal) error {
	existing := t.find(storeCode, productName)
	if existing == nil {
		item := &entity.InventoryItem{StoreCode: storeCode, ProductName: productName, Quantity: quantity, Price: decimal.Zero}
		if price.IsPositive() {
			item.Price = price
		}
		if err := item.Validate(); err != nil {
			return err
		}
		t.rows = append(t.rows, item)
		return nil
	}
	merged := *existing
	merged.MergeDelivery(quantity, price)
	if err := merged.Validate(); err != nil {
		return err
	}
	*existing = merged
	return nil
}

func (t *inventoryTable) upsert(item *entity.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.Price.IsNegative() {
		return domain.ErrInvalidPrice
	}
	cp := *item
	if existing := t.find(item.StoreCode, item.ProductName); existing != nil {
		*existing = cp
		return nil
	}
	t.rows = append(t.rows, &cp)
	return nil
}

func (t *inventoryTable) byProduct(productName string) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	for _, item := range t.rows {
		if item.ProductName == productName {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StoreCode < out[j].StoreCode })
	return out
}

func (t *inventoryTable) byStore(storeCode int) []*entity.InventoryItem {
	var out []*entity.InventoryItem
	for _, item := range t.rows {
		if item.StoreCode == storeCode {
			cp := *item
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out
}

func (t *inventoryTable) get(storeCode int, productName string) *entity.InventoryItem {
	item := t.find(storeCode, productName)
	if item == nil {
		return nil
	}
	cp := *item
	return &cp
}

func (t *inventoryTable) hasProduct(productName string) bool {
	for _, item := range t.rows {
		if item.ProductName == productName {
			return true
		}
	}
	return false
}
