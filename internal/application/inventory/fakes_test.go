package inventory_test

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

// fakeAllocRepo guarda documentos del ledger por clave (sku, location). Get
// devuelve una copia: como en la DB real, mutar el resultado no afecta lo
// persistido hasta que se llame Upsert. failUpsertKey hace fallar el Upsert de
// esa clave para probar los caminos de error del orquestador.
type fakeAllocRepo struct {
	docs          map[string]*entity.BatchAllocation
	failUpsertKey string
}

func newFakeAllocRepo() *fakeAllocRepo {
	return &fakeAllocRepo{docs: make(map[string]*entity.BatchAllocation)}
}

func allocKey(sku, location string) string { return sku + "|" + location }

func copyAlloc(a *entity.BatchAllocation) *entity.BatchAllocation {
	cp := *a
	cp.Allocations = make(map[string]int64, len(a.Allocations))
	for k, v := range a.Allocations {
		cp.Allocations[k] = v
	}
	return &cp
}

func (r *fakeAllocRepo) Get(sku, location string) (*entity.BatchAllocation, error) {
	a, ok := r.docs[allocKey(sku, location)]
	if !ok {
		return nil, nil
	}
	return copyAlloc(a), nil
}

// GetForUpdate sigue el contrato del puerto: si el documento no existe devuelve
// una fila vacía reclamada, que solo se persiste si la "transacción" llega a
// Upsert (con rollback la fila desaparece, como en la implementación real).
func (r *fakeAllocRepo) GetForUpdate(sku, location string) (*entity.BatchAllocation, error) {
	a, err := r.Get(sku, location)
	if err != nil || a != nil {
		return a, err
	}
	return entity.NewBatchAllocation(sku, location), nil
}

func (r *fakeAllocRepo) Upsert(allocation *entity.BatchAllocation) error {
	key := allocKey(allocation.SKU, allocation.Location)
	if r.failUpsertKey == key {
		return errors.New("upsert caído para " + key)
	}
	r.docs[key] = copyAlloc(allocation)
	return nil
}

func (r *fakeAllocRepo) List() ([]*entity.BatchAllocation, error) {
	out := make([]*entity.BatchAllocation, 0, len(r.docs))
	for _, a := range r.docs {
		out = append(out, copyAlloc(a))
	}
	return out, nil
}

var _ repository.BatchAllocationRepository = (*fakeAllocRepo)(nil)

// fakeTxRunner pasa el repo directamente al callback; un error del callback
// descarta la escritura igual que un rollback (el fake solo persiste en Upsert).
type fakeTxRunner struct {
	repo repository.BatchAllocationRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(allocRepo repository.BatchAllocationRepository) error) error {
	return fn(r.repo)
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

// fakeExpectedRepo proyección de inventario esperado en memoria.
type fakeExpectedRepo struct {
	entries map[string]*entity.ExpectedInventoryEntry
	fail    bool
}

func newFakeExpectedRepo() *fakeExpectedRepo {
	return &fakeExpectedRepo{entries: make(map[string]*entity.ExpectedInventoryEntry)}
}

func (r *fakeExpectedRepo) Get(sku, location string) (*entity.ExpectedInventoryEntry, error) {
	e, ok := r.entries[allocKey(sku, location)]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeExpectedRepo) Upsert(entry *entity.ExpectedInventoryEntry) error {
	if r.fail {
		return errors.New("expected repo caído")
	}
	cp := *entry
	r.entries[allocKey(entry.SKU, entry.Location)] = &cp
	return nil
}

func (r *fakeExpectedRepo) ListByLocation(location string) ([]*entity.ExpectedInventoryEntry, error) {
	var out []*entity.ExpectedInventoryEntry
	for _, e := range r.entries {
		if e.Location == location {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

var _ repository.ExpectedInventoryRepository = (*fakeExpectedRepo)(nil)

// fakeTxLogRepo log de transacciones en memoria, con modo de fallo para probar
// el comportamiento best-effort del orquestador.
type fakeTxLogRepo struct {
	created    []*entity.StockTransaction
	failCreate bool
}

func (r *fakeTxLogRepo) Create(tx *entity.StockTransaction) error {
	if r.failCreate {
		return errors.New("log de transacciones caído")
	}
	cp := *tx
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeTxLogRepo) GetByID(id string) (*entity.StockTransaction, error) {
	for _, tx := range r.created {
		if tx.ID == id {
			cp := *tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTxLogRepo) ListBySKU(sku string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.created {
		if tx.SKU == sku {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxLogRepo) ListByLocation(location string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	var out []*entity.StockTransaction
	for _, tx := range r.created {
		if tx.Location == location {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTxLogRepo) UpdateStatus(id, newStatus string) (bool, error) {
	for _, tx := range r.created {
		if tx.ID == id && tx.Status == entity.TxStatusPending {
			tx.Status = newStatus
			return true, nil
		}
	}
	return false, nil
}

var _ repository.TransactionRepository = (*fakeTxLogRepo)(nil)
