package dto

import "time"

// ScanRequest body para POST /api/packing/scan.
type ScanRequest struct {
	BatchID string `json:"batch_id"`
	CaseNo  string `json:"case_no"`
	SKU     string `json:"sku"`
	Qty     int64  `json:"qty"`
	Source  string `json:"source,omitempty"` // scanner | manual
}

// PackingBoxResponse vista de una caja tras un escaneo o consulta.
type PackingBoxResponse struct {
	BatchID       string           `json:"batch_id"`
	CaseNo        string           `json:"case_no"`
	ExpectedBySKU map[string]int64 `json:"expected_by_sku"`
	ScannedBySKU  map[string]int64 `json:"scanned_by_sku"`
	ExpectedQty   int64            `json:"expected_qty"`
	ScannedQty    int64            `json:"scanned_qty"`
	Status        string           `json:"status"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ColumnMapping índices de columna suministrados por el usuario para el import mapeado.
type ColumnMapping struct {
	CaseNoIndex int `json:"caseNoIndex"`
	PartNoIndex int `json:"partNoIndex"`
	QtyIndex    int `json:"qtyIndex"`
}

// ImportMappedRequest body para el import con mapeo de columnas explícito.
type ImportMappedRequest struct {
	CSV     string        `json:"csv"`
	Mapping ColumnMapping `json:"mapping"`
}

// ImportRequest body para el import legacy (cabecera CASE NO, PART NO, QTY).
type ImportRequest struct {
	CSV string `json:"csv"`
}

// SkippedRowDetail detalle de una fila descartada durante el import.
type SkippedRowDetail struct {
	RowNumber       int               `json:"rowNumber"` // fila de datos, 1-based (cabecera excluida)
	RowData         string            `json:"rowData"`
	Reason          string            `json:"reason"`
	ExtractedValues map[string]string `json:"extractedValues,omitempty"`
}

// ImportResult contrato de salida de las operaciones de import de packing list.
type ImportResult struct {
	Boxes          int                `json:"boxes"`
	TotalRows      int                `json:"totalRows"`
	SkippedRows    int                `json:"skippedRows"`
	Errors         []string           `json:"errors"`
	SkippedDetails []SkippedRowDetail `json:"skippedDetails,omitempty"`
}
