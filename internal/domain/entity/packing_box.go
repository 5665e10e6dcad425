package entity

import "time"

// PackingBox caja/case de un lote con cantidades esperadas vs escaneadas por SKU.
// Un documento por (batchID, caseNo). El estado se deriva de los totales agregados
// en cada escaneo (modo flexible).
type PackingBox struct {
	BatchID       string
	CaseNo        string
	ExpectedBySKU map[string]int64 // puede estar vacío (caja no planificada, modo flexible)
	ScannedBySKU  map[string]int64 // acumulado de escaneos
	ExpectedQty   int64            // derivado: suma de ExpectedBySKU
	ScannedQty    int64            // derivado: suma de ScannedBySKU
	Status        string           // packing.Status*
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPackingBox crea una caja vacía (sin expectativa, sin escaneos).
func NewPackingBox(batchID, caseNo string) *PackingBox {
	return &PackingBox{
		BatchID:       batchID,
		CaseNo:        caseNo,
		ExpectedBySKU: make(map[string]int64),
		ScannedBySKU:  make(map[string]int64),
	}
}

// Fuentes de un evento de escaneo.
const (
	ScanSourceScanner = "scanner"
	ScanSourceManual  = "manual"
)

// ScanEvent registro hijo append-only de un escaneo sobre una caja. Es rastro de
// auditoría de solo escritura; las invariantes se verifican contra la caja, no contra
// estos eventos.
type ScanEvent struct {
	ID        string
	BatchID   string
	CaseNo    string
	SKU       string
	Qty       int64
	UserEmail string
	Source    string
	CreatedAt time.Time
}
