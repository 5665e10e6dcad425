package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.BatchAllocationRepository = (*BatchAllocationRepo)(nil)

// BatchAllocationRepo implementación sobre PostgreSQL (usable con pool o tx).
// El mapa de asignaciones por lote se guarda como JSONB: un documento por
// (sku, location) que se lee y escribe completo.
type BatchAllocationRepo struct {
	q Querier
}

// NewBatchAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchAllocationRepository(q Querier) *BatchAllocationRepo {
	return &BatchAllocationRepo{q: q}
}

// Get obtiene el documento de asignaciones de un SKU en una ubicación.
// Devuelve nil si no existe.
func (r *BatchAllocationRepo) Get(sku, location string) (*entity.BatchAllocation, error) {
	return r.get(sku, location, false)
}

// GetForUpdate obtiene el documento y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe la reclama primero: FOR UPDATE sobre cero filas no bloquea
// nada, y dos transacciones concurrentes construirían el documento desde cero
// pisándose la una a la otra en el upsert. La fila reclamada desaparece con el
// rollback si la transacción no llega a commit.
func (r *BatchAllocationRepo) GetForUpdate(sku, location string) (*entity.BatchAllocation, error) {
	a, err := r.get(sku, location, true)
	if err != nil || a != nil {
		return a, err
	}
	if err := r.claim(sku, location); err != nil {
		return nil, err
	}
	return r.get(sku, location, true)
}

func (r *BatchAllocationRepo) claim(sku, location string) error {
	query := `
		INSERT INTO batch_allocations (sku, location, allocations, total_allocated, updated_at)
		VALUES ($1, $2, '{}'::jsonb, 0, now())
		ON CONFLICT (sku, location) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, sku, location); err != nil {
		return fmt.Errorf("claim batch allocation: %w", err)
	}
	return nil
}

func (r *BatchAllocationRepo) get(sku, location string, forUpdate bool) (*entity.BatchAllocation, error) {
	query := `
		SELECT sku, location, allocations, total_allocated, updated_at
		FROM batch_allocations WHERE sku = $1 AND location = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var a entity.BatchAllocation
	var allocations []byte
	err := r.q.QueryRow(context.Background(), query, sku, location).Scan(
		&a.SKU, &a.Location, &allocations, &a.TotalAllocated, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch allocation: %w", err)
	}
	if err := json.Unmarshal(allocations, &a.Allocations); err != nil {
		return nil, fmt.Errorf("decode allocations: %w", err)
	}
	if a.Allocations == nil {
		a.Allocations = make(map[string]int64)
	}
	return &a, nil
}

// Upsert inserta o sobreescribe el documento completo de asignaciones.
func (r *BatchAllocationRepo) Upsert(allocation *entity.BatchAllocation) error {
	allocations, err := json.Marshal(allocation.Allocations)
	if err != nil {
		return fmt.Errorf("encode allocations: %w", err)
	}
	query := `
		INSERT INTO batch_allocations (sku, location, allocations, total_allocated, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (sku, location)
		DO UPDATE SET allocations = EXCLUDED.allocations,
		              total_allocated = EXCLUDED.total_allocated,
		              updated_at = now()`
	_, err = r.q.Exec(context.Background(), query,
		allocation.SKU, allocation.Location, allocations, allocation.TotalAllocated,
	)
	if err != nil {
		return fmt.Errorf("upsert batch allocation: %w", err)
	}
	return nil
}

// List devuelve todos los documentos de asignación, ordenados por ubicación y SKU.
func (r *BatchAllocationRepo) List() ([]*entity.BatchAllocation, error) {
	query := `
		SELECT sku, location, allocations, total_allocated, updated_at
		FROM batch_allocations ORDER BY location, sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list batch allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.BatchAllocation
	for rows.Next() {
		var a entity.BatchAllocation
		var allocations []byte
		if err := rows.Scan(&a.SKU, &a.Location, &allocations, &a.TotalAllocated, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch allocation: %w", err)
		}
		if err := json.Unmarshal(allocations, &a.Allocations); err != nil {
			return nil, fmt.Errorf("decode allocations: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
