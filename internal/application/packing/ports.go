package packing

import (
	"context"

	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// ScanTxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de cajas atado a esa tx. Garantiza que el incremento de un escaneo
// sea atómico frente a escaneos concurrentes sobre la misma caja.
type ScanTxRunner interface {
	RunScan(ctx context.Context, fn func(boxRepo repository.PackingBoxRepository) error) error
}
