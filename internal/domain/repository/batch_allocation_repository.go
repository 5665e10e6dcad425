package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// BatchAllocationRepository puerto de persistencia del ledger de asignaciones por lote.
// Un documento por (SKU, ubicación); la mutación se hace siempre dentro de una
// transacción con GetForUpdate para garantizar read-modify-write serializable.
type BatchAllocationRepository interface {
	Get(sku, location string) (*entity.BatchAllocation, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si el
	// documento no existe, la implementación reclama una fila vacía antes de
	// bloquear, de modo que dos primeras escrituras concurrentes sobre la
	// misma clave se serialicen en lugar de pisarse.
	GetForUpdate(sku, location string) (*entity.BatchAllocation, error)
	Upsert(allocation *entity.BatchAllocation) error
	// List escaneo completo; usado para construir directorios por ubicación.
	List() ([]*entity.BatchAllocation, error)
}
