package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.ExpectedInventoryRepository = (*ExpectedInventoryRepo)(nil)

// ExpectedInventoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type ExpectedInventoryRepo struct {
	q Querier
}

// NewExpectedInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpectedInventoryRepository(q Querier) *ExpectedInventoryRepo {
	return &ExpectedInventoryRepo{q: q}
}

// Get obtiene la entrada de inventario esperado de un SKU en una ubicación.
// Devuelve nil si no existe.
func (r *ExpectedInventoryRepo) Get(sku, location string) (*entity.ExpectedInventoryEntry, error) {
	query := `
		SELECT sku, location, amount, updated_at
		FROM expected_inventory WHERE sku = $1 AND location = $2`
	var e entity.ExpectedInventoryEntry
	err := r.q.QueryRow(context.Background(), query, sku, location).Scan(
		&e.SKU, &e.Location, &e.Amount, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expected inventory: %w", err)
	}
	return &e, nil
}

// Upsert sobreescribe la entrada completa (last-writer-wins).
func (r *ExpectedInventoryRepo) Upsert(entry *entity.ExpectedInventoryEntry) error {
	query := `
		INSERT INTO expected_inventory (sku, location, amount, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (sku, location)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, entry.SKU, entry.Location, entry.Amount)
	if err != nil {
		return fmt.Errorf("upsert expected inventory: %w", err)
	}
	return nil
}

// ListByLocation lista las entradas de una ubicación ordenadas por SKU.
func (r *ExpectedInventoryRepo) ListByLocation(location string) ([]*entity.ExpectedInventoryEntry, error) {
	query := `
		SELECT sku, location, amount, updated_at
		FROM expected_inventory WHERE location = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, location)
	if err != nil {
		return nil, fmt.Errorf("list expected inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.ExpectedInventoryEntry
	for rows.Next() {
		var e entity.ExpectedInventoryEntry
		if err := rows.Scan(&e.SKU, &e.Location, &e.Amount, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expected inventory: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
