package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// ExpectedInventoryRepository puerto de la proyección de inventario esperado
// (vista de lectura). El Upsert es sobreescritura total: last-writer-wins.
type ExpectedInventoryRepository interface {
	Get(sku, location string) (*entity.ExpectedInventoryEntry, error)
	Upsert(entry *entity.ExpectedInventoryEntry) error
	ListByLocation(location string) ([]*entity.ExpectedInventoryEntry, error)
}
