package entity

import "time"

// ExpectedInventoryEntry total aplanado por (SKU, ubicación) — la vista de lectura
// rápida ("capa 1"). Se sobreescribe vía sync desde el ledger de asignaciones; la
// divergencia transitoria es tolerada (consistencia eventual).
type ExpectedInventoryEntry struct {
	SKU       string
	Location  string
	Amount    int64
	UpdatedAt time.Time
}
