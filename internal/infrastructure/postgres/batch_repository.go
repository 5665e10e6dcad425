package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación sobre PostgreSQL (usable con pool o tx).
// Items y VINs se guardan como JSONB.
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.Batch) error {
	items, err := json.Marshal(batch.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	vins, err := json.Marshal(batch.CarVins)
	if err != nil {
		return fmt.Errorf("encode car_vins: %w", err)
	}
	query := `
		INSERT INTO batches (id, name, items, car_vins, car_type, total_cars, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, items, vins, batch.CarType, batch.TotalCars,
		batch.Status, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *BatchRepo) GetByID(id string) (*entity.Batch, error) {
	query := `
		SELECT id, name, items, car_vins, car_type, total_cars, status, created_at, updated_at
		FROM batches WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	batch, err := scanBatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return batch, nil
}

// List lista lotes paginados, los más recientes primero.
func (r *BatchRepo) List(limit, offset int) ([]*entity.Batch, error) {
	query := `
		SELECT id, name, items, car_vins, car_type, total_cars, status, created_at, updated_at
		FROM batches ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		batch, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, batch)
	}
	return list, rows.Err()
}

// Update sobreescribe el lote completo.
func (r *BatchRepo) Update(batch *entity.Batch) error {
	items, err := json.Marshal(batch.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	vins, err := json.Marshal(batch.CarVins)
	if err != nil {
		return fmt.Errorf("encode car_vins: %w", err)
	}
	query := `
		UPDATE batches
		SET name = $2, items = $3, car_vins = $4, car_type = $5, total_cars = $6, status = $7, updated_at = $8
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, items, vins, batch.CarType, batch.TotalCars,
		batch.Status, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

func scanBatch(row pgxScanner) (*entity.Batch, error) {
	var b entity.Batch
	var items, vins []byte
	var carType *string
	err := row.Scan(&b.ID, &b.Name, &items, &vins, &carType, &b.TotalCars,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &b.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	if err := json.Unmarshal(vins, &b.CarVins); err != nil {
		return nil, fmt.Errorf("decode car_vins: %w", err)
	}
	if carType != nil {
		b.CarType = *carType
	}
	return &b, nil
}
