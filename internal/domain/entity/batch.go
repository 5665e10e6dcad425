package entity

import "time"

// Estados de un lote de producción.
const (
	BatchStatusPlanning   = "planning"
	BatchStatusInProgress = "in_progress"
	BatchStatusCompleted  = "completed"
)

// BatchItem línea del listado de un lote (SKU, nombre y cantidad planificada).
type BatchItem struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

// Batch lote de producción. Una vez activado (status in_progress) su packing list
// es inmutable: los imports contra el lote deben rechazarse sin mutación.
type Batch struct {
	ID        string
	Name      string
	Items     []BatchItem
	CarVins   []string
	CarType   string
	TotalCars int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Activated indica si el lote ya fue activado y su packing list quedó bloqueado.
func (b *Batch) Activated() bool {
	return b.Status == BatchStatusInProgress
}
