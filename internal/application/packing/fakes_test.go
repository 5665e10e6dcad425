package packing_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/packing"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domainpacking "github.com/jhoicas/Bodega-api/internal/domain/packing"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// fakeBoxRepo cajas en memoria. Get devuelve una copia: mutar el resultado no
// afecta lo persistido hasta Upsert, como con la DB real.
type fakeBoxRepo struct {
	boxes      map[string]*entity.PackingBox
	events     []*entity.ScanEvent
	failAppend bool
}

func newFakeBoxRepo() *fakeBoxRepo {
	return &fakeBoxRepo{boxes: make(map[string]*entity.PackingBox)}
}

func boxKey(batchID, caseNo string) string { return batchID + "|" + caseNo }

func copyBox(b *entity.PackingBox) *entity.PackingBox {
	cp := *b
	cp.ExpectedBySKU = make(map[string]int64, len(b.ExpectedBySKU))
	for k, v := range b.ExpectedBySKU {
		cp.ExpectedBySKU[k] = v
	}
	cp.ScannedBySKU = make(map[string]int64, len(b.ScannedBySKU))
	for k, v := range b.ScannedBySKU {
		cp.ScannedBySKU[k] = v
	}
	return &cp
}

func (r *fakeBoxRepo) Get(batchID, caseNo string) (*entity.PackingBox, error) {
	b, ok := r.boxes[boxKey(batchID, caseNo)]
	if !ok {
		return nil, nil
	}
	return copyBox(b), nil
}

// GetForUpdate sigue el contrato del puerto: si la caja no existe devuelve una
// fila vacía reclamada, que solo se persiste si la "transacción" llega a
// Upsert (con rollback la fila desaparece, como en la implementación real).
func (r *fakeBoxRepo) GetForUpdate(batchID, caseNo string) (*entity.PackingBox, error) {
	b, err := r.Get(batchID, caseNo)
	if err != nil || b != nil {
		return b, err
	}
	claimed := entity.NewPackingBox(batchID, caseNo)
	claimed.Status = domainpacking.StatusNotStarted
	claimed.CreatedAt = time.Now()
	return claimed, nil
}

func (r *fakeBoxRepo) Upsert(box *entity.PackingBox) error {
	r.boxes[boxKey(box.BatchID, box.CaseNo)] = copyBox(box)
	return nil
}

func (r *fakeBoxRepo) ListByBatch(batchID string) ([]*entity.PackingBox, error) {
	var out []*entity.PackingBox
	for _, b := range r.boxes {
		if b.BatchID == batchID {
			out = append(out, copyBox(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaseNo < out[j].CaseNo })
	return out, nil
}

func (r *fakeBoxRepo) DeleteByBatch(batchID string) error {
	for key, b := range r.boxes {
		if b.BatchID == batchID {
			delete(r.boxes, key)
		}
	}
	return nil
}

func (r *fakeBoxRepo) AppendScan(event *entity.ScanEvent) error {
	if r.failAppend {
		return errors.New("box_scans caído")
	}
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

var _ repository.PackingBoxRepository = (*fakeBoxRepo)(nil)

// fakeScanTxRunner pasa el repo directamente al callback.
type fakeScanTxRunner struct {
	repo repository.PackingBoxRepository
}

func (r *fakeScanTxRunner) RunScan(ctx context.Context, fn func(boxRepo repository.PackingBoxRepository) error) error {
	return fn(r.repo)
}

var _ packing.ScanTxRunner = (*fakeScanTxRunner)(nil)

// fakeBatchRepo lotes en memoria.
type fakeBatchRepo struct {
	batches map[string]*entity.Batch
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: make(map[string]*entity.Batch)}
}

func (r *fakeBatchRepo) Create(batch *entity.Batch) error {
	cp := *batch
	r.batches[batch.ID] = &cp
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	b, ok := r.batches[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBatchRepo) List(limit, offset int) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.batches {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBatchRepo) Update(batch *entity.Batch) error {
	cp := *batch
	r.batches[batch.ID] = &cp
	return nil
}

var _ repository.BatchRepository = (*fakeBatchRepo)(nil)
