// Package packing contiene la máquina de estados de reconciliación de cajas
// (modo flexible): el estado se deriva de los totales agregados esperado vs
// escaneado, no de la comparación por SKU.
package packing

// Estados derivados de una caja.
const (
	StatusNotStarted  = "not_started"
	StatusInProgress  = "in_progress"
	StatusComplete    = "complete"
	StatusOverScanned = "over_scanned"
)

// ComputeStatus deriva el estado de una caja a partir de sus totales agregados.
//
//	S = 0            -> not_started
//	E = 0, S > 0     -> in_progress (caja sin expectativa: no hay nada que exceder)
//	0 < S < E        -> in_progress
//	S = E > 0        -> complete
//	S > E > 0        -> over_scanned
//
// Nota: una caja puede quedar complete con SKUs individuales sub o sobre
// escaneados, mientras los totales agregados cuadren.
func ComputeStatus(expectedQty, scannedQty int64) string {
	switch {
	case scannedQty == 0:
		return StatusNotStarted
	case expectedQty == 0:
		return StatusInProgress
	case scannedQty > expectedQty:
		return StatusOverScanned
	case scannedQty >= expectedQty:
		return StatusComplete
	default:
		return StatusInProgress
	}
}

// SumQuantities suma las cantidades de un mapa SKU -> cantidad.
func SumQuantities(bySKU map[string]int64) int64 {
	var total int64
	for _, qty := range bySKU {
		total += qty
	}
	return total
}
