package packing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Bodega-api/internal/domain/packing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ApplyScanUseCase aplica escaneos sobre cajas de empaque (modo flexible): una
// caja desconocida se auto-crea sin expectativa en lugar de rechazar el escaneo,
// y el estado se deriva de los totales agregados tras cada incremento.
type ApplyScanUseCase struct {
	txRunner ScanTxRunner
	boxRepo  repository.PackingBoxRepository // fuera de tx: append del evento de auditoría
	log      *logger.Logger
}

// NewApplyScanUseCase construye el caso de uso de escaneo.
func NewApplyScanUseCase(txRunner ScanTxRunner, boxRepo repository.PackingBoxRepository, log *logger.Logger) *ApplyScanUseCase {
	return &ApplyScanUseCase{txRunner: txRunner, boxRepo: boxRepo, log: log}
}

// ApplyScan incrementa scannedBySku[sku] en qty dentro de una transacción de un
// solo documento: lee la caja con bloqueo (auto-creándola si no existe),
// recalcula totales y estado, y escribe. El incremento es atómico frente a
// escaneos concurrentes sobre la MISMA caja; no hay atomicidad entre cajas.
// El ScanEvent se agrega fuera de la transacción, best-effort.
func (uc *ApplyScanUseCase) ApplyScan(ctx context.Context, batchID, caseNo, sku string, qty int64, userEmail, source string) (*entity.PackingBox, error) {
	if batchID == "" || caseNo == "" || sku == "" || qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if source == "" {
		source = entity.ScanSourceScanner
	}

	now := time.Now()
	var updated *entity.PackingBox
	err := uc.txRunner.RunScan(ctx, func(boxRepo repository.PackingBoxRepository) error {
		box, err := boxRepo.GetForUpdate(batchID, caseNo)
		if err != nil {
			return err
		}
		if box == nil {
			box = entity.NewPackingBox(batchID, caseNo)
			box.Status = domainpacking.StatusNotStarted
			box.CreatedAt = now
		}
		box.ScannedBySKU[sku] += qty
		box.ExpectedQty = domainpacking.SumQuantities(box.ExpectedBySKU)
		box.ScannedQty = domainpacking.SumQuantities(box.ScannedBySKU)
		box.Status = domainpacking.ComputeStatus(box.ExpectedQty, box.ScannedQty)
		box.UpdatedAt = now
		if err := boxRepo.Upsert(box); err != nil {
			return err
		}
		updated = box
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Rastro de auditoría write-only; su fallo no revierte el escaneo.
	event := &entity.ScanEvent{
		ID:        uuid.New().String(),
		BatchID:   batchID,
		CaseNo:    caseNo,
		SKU:       sku,
		Qty:       qty,
		UserEmail: userEmail,
		Source:    source,
		CreatedAt: now,
	}
	if err := uc.boxRepo.AppendScan(event); err != nil {
		uc.log.Warn().Err(err).
			Str("batch_id", batchID).
			Str("case_no", caseNo).
			Str("sku", sku).
			Msg("no se pudo registrar el evento de escaneo; el escaneo ya está confirmado")
	}
	return updated, nil
}
