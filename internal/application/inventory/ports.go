package inventory

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio del ledger atado a esa tx. Garantiza el read-modify-write
// serializable por documento (SKU, ubicación).
type TxRunner interface {
	Run(ctx context.Context, fn func(allocRepo repository.BatchAllocationRepository) error) error
}
