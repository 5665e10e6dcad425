package dto

import "time"

// StockChangeRequest body para POST /api/inventory/stock-changes.
// Para SCAN_IN/WASTE/LOSS/DEFECT: sku, location, quantity (> 0).
// Para ADJUSTMENT: quantity es un delta con signo (≠ 0).
// Para TRANSFER: sku, from_location, to_location, quantity (> 0).
// batch_id vacío se interpreta como el lote centinela DEFAULT.
type StockChangeRequest struct {
	SKU          string `json:"sku"`
	ItemName     string `json:"item_name,omitempty"`
	Location     string `json:"location,omitempty"`
	FromLocation string `json:"from_location,omitempty"`
	ToLocation   string `json:"to_location,omitempty"`
	BatchID      string `json:"batch_id,omitempty"`
	Type         string `json:"type"`
	Quantity     int64  `json:"quantity"`
	Notes        string `json:"notes,omitempty"`
}

// StockChangeResponse resultado del flujo orquestado de cambio de stock.
type StockChangeResponse struct {
	SKU            string   `json:"sku"`
	Location       string   `json:"location"`
	NewTotal       int64    `json:"new_total"`
	TransactionIDs []string `json:"transaction_ids"`
}

// AllocationResponse vista de un documento del ledger de asignaciones.
type AllocationResponse struct {
	SKU            string           `json:"sku"`
	Location       string           `json:"location"`
	Allocations    map[string]int64 `json:"allocations"`
	TotalAllocated int64            `json:"total_allocated"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ExpectedInventoryResponse vista de la proyección de inventario esperado.
type ExpectedInventoryResponse struct {
	SKU       string    `json:"sku"`
	Location  string    `json:"location"`
	Amount    int64     `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionResponse una entrada del log de transacciones.
type TransactionResponse struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	ItemName       string    `json:"item_name,omitempty"`
	Amount         int64     `json:"amount"`
	PreviousAmount int64     `json:"previous_amount"`
	NewAmount      int64     `json:"new_amount"`
	Location       string    `json:"location"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	BatchID        string    `json:"batch_id,omitempty"`
	PerformedBy    string    `json:"performed_by"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// UpdateTransactionStatusRequest body para PATCH /api/inventory/transactions/:id/status.
type UpdateTransactionStatusRequest struct {
	Status string `json:"status"` // COMPLETED | CANCELLED
}
