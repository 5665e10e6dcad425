package repository

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

// TransactionRepository puerto de persistencia del log de transacciones de stock
// (append-only; solo el status transiciona después de creado).
type TransactionRepository interface {
	Create(tx *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	ListBySKU(sku string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	ListByLocation(location string, from, to *time.Time, limit, offset int) ([]*entity.StockTransaction, error)
	// UpdateStatus transiciona PENDING -> newStatus. Devuelve false si la transacción
	// no estaba PENDING (sin mutación).
	UpdateStatus(id, newStatus string) (bool, error)
}
