package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// SyncUseCase mantiene la proyección de inventario esperado ("capa 1") alineada
// con el total del ledger. Es una escritura secundaria de sobreescritura
// (last-writer-wins): si falla, el cambio de stock ya confirmado sigue siendo
// válido y la divergencia se corrige en el próximo sync.
type SyncUseCase struct {
	allocRepo    repository.BatchAllocationRepository
	expectedRepo repository.ExpectedInventoryRepository
	log          *logger.Logger
}

// NewSyncUseCase construye el caso de uso de sincronización.
func NewSyncUseCase(
	allocRepo repository.BatchAllocationRepository,
	expectedRepo repository.ExpectedInventoryRepository,
	log *logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{allocRepo: allocRepo, expectedRepo: expectedRepo, log: log}
}

// SyncExpectedFromBatchAllocations sobreescribe la proyección para (SKU, ubicación).
// Si knownTotal no es nil se escribe directamente (el caller ya calculó la suma);
// si no, se relee el ledger y se usa su TotalAllocated. Idempotente: dos syncs
// seguidos con el mismo estado del ledger producen el mismo amount.
func (uc *SyncUseCase) SyncExpectedFromBatchAllocations(ctx context.Context, sku, location string, knownTotal *int64) error {
	var total int64
	if knownTotal != nil {
		total = *knownTotal
	} else {
		alloc, err := uc.allocRepo.Get(sku, location)
		if err != nil {
			return err
		}
		if alloc != nil {
			total = alloc.TotalAllocated
		}
	}
	return uc.expectedRepo.Upsert(&entity.ExpectedInventoryEntry{
		SKU:       sku,
		Location:  location,
		Amount:    total,
		UpdatedAt: time.Now(),
	})
}

// GetExpected lee la proyección para un (SKU, ubicación). Devuelve nil si no existe.
func (uc *SyncUseCase) GetExpected(ctx context.Context, sku, location string) (*entity.ExpectedInventoryEntry, error) {
	return uc.expectedRepo.Get(sku, location)
}

// ListExpectedByLocation lista la proyección de una ubicación.
func (uc *SyncUseCase) ListExpectedByLocation(ctx context.Context, location string) ([]*entity.ExpectedInventoryEntry, error) {
	return uc.expectedRepo.ListByLocation(location)
}

// SyncBestEffort envoltorio log-and-continue: un fallo del sync nunca se propaga
// como fallo de la operación de negocio que lo disparó.
func (uc *SyncUseCase) SyncBestEffort(ctx context.Context, sku, location string, knownTotal *int64) {
	if err := uc.SyncExpectedFromBatchAllocations(ctx, sku, location, knownTotal); err != nil {
		uc.log.Error().Err(err).
			Str("sku", sku).
			Str("location", location).
			Msg("sync de inventario esperado falló; el cambio de stock ya está confirmado")
	}
}
