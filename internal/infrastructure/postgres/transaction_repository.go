package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
// El log es append-only: no hay UPDATE salvo la transición de status.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste una transacción de stock.
func (r *TransactionRepo) Create(tx *entity.StockTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (id, sku, item_name, amount, previous_amount, new_amount, location, type, status, batch_id, performed_by, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.SKU, tx.ItemName, tx.Amount, tx.PreviousAmount, tx.NewAmount,
		tx.Location, tx.Type, tx.Status, tx.BatchID, tx.PerformedBy, tx.Notes, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una transacción por ID. Devuelve nil si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.StockTransaction, error) {
	query := `
		SELECT id, sku, item_name, amount, previous_amount, new_amount, location, type, status, batch_id, performed_by, notes, created_at
		FROM stock_transactions WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	tx, err := scanStockTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock transaction: %w", err)
	}
	return tx, nil
}

// ListBySKU lista transacciones de un SKU en un rango de fechas.
func (r *TransactionRepo) ListBySKU(sku string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list("sku", sku, from, to, limit, offset)
}

// ListByLocation lista transacciones de una ubicación en un rango de fechas.
func (r *TransactionRepo) ListByLocation(location string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	return r.list("location", location, from, to, limit, offset)
}

func (r *TransactionRepo) list(column, value string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error) {
	query := fmt.Sprintf(`
		SELECT id, sku, item_name, amount, previous_amount, new_amount, location, type, status, batch_id, performed_by, notes, created_at
		FROM stock_transactions WHERE %s = $1`, column)
	args := []any{value}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by %s: %w", column, err)
	}
	defer rows.Close()
	var list []*entity.StockTransaction
	for rows.Next() {
		tx, err := scanStockTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		list = append(list, tx)
	}
	return list, rows.Err()
}

// UpdateStatus transiciona PENDING -> newStatus en una sola sentencia condicional.
// Devuelve false si la transacción no estaba PENDING (sin mutación).
func (r *TransactionRepo) UpdateStatus(id, newStatus string) (bool, error) {
	query := `UPDATE stock_transactions SET status = $2 WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query, id, newStatus, entity.TxStatusPending)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanStockTransaction(row pgxScanner) (*entity.StockTransaction, error) {
	var t entity.StockTransaction
	var itemName, batchID, performedBy, notes *string
	err := row.Scan(&t.ID, &t.SKU, &itemName, &t.Amount, &t.PreviousAmount, &t.NewAmount,
		&t.Location, &t.Type, &t.Status, &batchID, &performedBy, &notes, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	if itemName != nil {
		t.ItemName = *itemName
	}
	if batchID != nil {
		t.BatchID = *batchID
	}
	if performedBy != nil {
		t.PerformedBy = *performedBy
	}
	if notes != nil {
		t.Notes = *notes
	}
	return &t, nil
}
