package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// PackingBoxRepository puerto de persistencia de cajas de empaque.
// Un documento por (batchID, caseNo) con subcolección de eventos de escaneo.
type PackingBoxRepository interface {
	Get(batchID, caseNo string) (*entity.PackingBox, error)
	// GetForUpdate bloquea la caja para el read-modify-write del escaneo. Si
	// la caja no existe, la implementación reclama una fila vacía antes de
	// bloquear: dos primeros escaneos concurrentes sobre la misma caja se
	// serializan en lugar de pisarse el incremento.
	GetForUpdate(batchID, caseNo string) (*entity.PackingBox, error)
	Upsert(box *entity.PackingBox) error
	ListByBatch(batchID string) ([]*entity.PackingBox, error)
	// DeleteByBatch borra todas las cajas del lote (reemplazo por import).
	DeleteByBatch(batchID string) error
	// AppendScan agrega un evento de escaneo (append-only, best-effort).
	AppendScan(event *entity.ScanEvent) error
}
