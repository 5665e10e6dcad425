package entity

import "time"

// Tipos de transacción de stock.
const (
	TxTypeScanIn     = "SCAN_IN"    // entrada por escaneo
	TxTypeAdjustment = "ADJUSTMENT" // ajuste manual (delta con signo)
	TxTypeTransfer   = "TRANSFER"   // traslado entre ubicaciones
	TxTypeWaste      = "WASTE"      // merma
	TxTypeLoss       = "LOSS"       // pérdida
	TxTypeDefect     = "DEFECT"     // defectuoso
)

// Estados de una transacción. Solo PENDING puede transicionar (flujo de aprobación).
const (
	TxStatusPending   = "PENDING"
	TxStatusCompleted = "COMPLETED"
	TxStatusCancelled = "CANCELLED"
)

// StockTransaction registro inmutable de un evento que afecta stock, con snapshot
// antes/después al momento de crearse. Invariante: NewAmount = PreviousAmount + Amount.
// Solo el campo Status muta después de creado (PENDING -> COMPLETED|CANCELLED).
type StockTransaction struct {
	ID             string
	SKU            string
	ItemName       string
	Amount         int64 // delta con signo
	PreviousAmount int64
	NewAmount      int64
	Location       string
	Type           string
	Status         string
	BatchID        string // opcional
	PerformedBy    string
	Notes          string
	CreatedAt      time.Time
}
