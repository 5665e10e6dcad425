package entity

import "time"

// DefaultBatchID lote centinela para stock aún no atribuido a un lote de producción.
const DefaultBatchID = "DEFAULT"

// BatchAllocation desglose autoritativo del stock físico de un SKU en una ubicación,
// repartido por lote de producción ("capa 2"). Un documento por (SKU, ubicación).
type BatchAllocation struct {
	SKU            string
	Location       string
	Allocations    map[string]int64 // batchID -> cantidad asignada (>= 0)
	TotalAllocated int64            // derivado: suma de Allocations
	UpdatedAt      time.Time
}

// NewBatchAllocation crea el documento vacío para un (SKU, ubicación).
func NewBatchAllocation(sku, location string) *BatchAllocation {
	return &BatchAllocation{
		SKU:         sku,
		Location:    location,
		Allocations: make(map[string]int64),
	}
}

// RecomputeTotal recalcula TotalAllocated a partir de Allocations.
// Toda ruta de escritura que mute Allocations debe llamarla antes de persistir.
func (a *BatchAllocation) RecomputeTotal() {
	var total int64
	for _, qty := range a.Allocations {
		total += qty
	}
	a.TotalAllocated = total
}
