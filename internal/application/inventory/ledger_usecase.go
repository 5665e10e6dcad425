package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// LedgerUseCase mantiene el desglose autoritativo por lote del stock físico en
// cada ubicación ("capa 2"). Cada add/remove es un read-modify-write de un solo
// documento dentro de una transacción con bloqueo de fila; no toca la proyección
// de inventario esperado ni el log de transacciones — eso lo orquesta el caller.
type LedgerUseCase struct {
	txRunner  TxRunner
	allocRepo repository.BatchAllocationRepository // lecturas fuera de transacción
}

// NewLedgerUseCase construye el caso de uso del ledger.
func NewLedgerUseCase(txRunner TxRunner, allocRepo repository.BatchAllocationRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, allocRepo: allocRepo}
}

// AddToBatchAllocation incrementa allocations[batchID] en qty (creando el documento
// si no existe) y recalcula TotalAllocated. No valida qty > 0 en esta capa: los
// callers pasan deltas positivos para semántica de "add".
func (uc *LedgerUseCase) AddToBatchAllocation(ctx context.Context, sku, location, batchID string, qty int64) (*entity.BatchAllocation, error) {
	if sku == "" || location == "" || batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.BatchAllocation
	err := uc.txRunner.Run(ctx, func(allocRepo repository.BatchAllocationRepository) error {
		alloc, err := allocRepo.GetForUpdate(sku, location)
		if err != nil {
			return err
		}
		if alloc == nil {
			alloc = entity.NewBatchAllocation(sku, location)
		}
		alloc.Allocations[batchID] += qty
		if alloc.Allocations[batchID] == 0 {
			delete(alloc.Allocations, batchID)
		}
		alloc.RecomputeTotal()
		alloc.UpdatedAt = time.Now()
		if err := allocRepo.Upsert(alloc); err != nil {
			return err
		}
		updated = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveFromBatchAllocation decrementa allocations[batchID] en qty. La asignación
// por lote nunca puede quedar negativa: la disponibilidad se valida bajo el mismo
// bloqueo de fila, así que un escaneo concurrente no puede colarse entre la
// lectura y la escritura.
func (uc *LedgerUseCase) RemoveFromBatchAllocation(ctx context.Context, sku, location, batchID string, qty int64) (*entity.BatchAllocation, error) {
	if sku == "" || location == "" || batchID == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.BatchAllocation
	err := uc.txRunner.Run(ctx, func(allocRepo repository.BatchAllocationRepository) error {
		alloc, err := allocRepo.GetForUpdate(sku, location)
		if err != nil {
			return err
		}
		if alloc == nil {
			return fmt.Errorf("%w: lote %s (%s en %s): disponible 0, se intenta retirar %d",
				domain.ErrInsufficientStock, batchID, sku, location, qty)
		}
		available := alloc.Allocations[batchID]
		if qty > available {
			return fmt.Errorf("%w: lote %s (%s en %s): disponible %d, se intenta retirar %d",
				domain.ErrInsufficientStock, batchID, sku, location, available, qty)
		}
		alloc.Allocations[batchID] = available - qty
		if alloc.Allocations[batchID] == 0 {
			delete(alloc.Allocations, batchID)
		}
		alloc.RecomputeTotal()
		alloc.UpdatedAt = time.Now()
		if err := allocRepo.Upsert(alloc); err != nil {
			return err
		}
		updated = alloc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetBatchAllocation obtiene el documento del ledger para un (SKU, ubicación).
// Devuelve nil si no existe.
func (uc *LedgerUseCase) GetBatchAllocation(ctx context.Context, sku, location string) (*entity.BatchAllocation, error) {
	return uc.allocRepo.Get(sku, location)
}

// ListBatchAllocations escaneo completo del ledger; usado para construir
// directorios por ubicación.
func (uc *LedgerUseCase) ListBatchAllocations(ctx context.Context) ([]*entity.BatchAllocation, error) {
	return uc.allocRepo.List()
}
