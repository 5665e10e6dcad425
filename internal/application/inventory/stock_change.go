package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Bodega-api/internal/domain/inventory"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
	"github.com/jhoicas/Bodega-api/pkg/logger"
)

// StockChangeUseCase implementa el flujo orquestado de cambio de stock: cada
// acción que afecta stock (entrada por escaneo, ajuste, merma/pérdida/defecto,
// traslado) ejecuta en orden:
//
//  1. validación de entrada (tipo, cantidad, formato de ubicación);
//  2. mutación del ledger dentro de una transacción (el remove valida
//     disponibilidad bajo bloqueo);
//  3. registro en el log de transacciones con snapshot antes/después;
//  4. re-sync de la proyección de inventario esperado.
//
// Los pasos 3 y 4 NO comparten transacción con el paso 2: son llamadas
// independientes cuyo fallo se loggea y no revierte la mutación del ledger.
// Solo el paso 2 puede hacer fallar la operación.
type StockChangeUseCase struct {
	ledger *LedgerUseCase
	txRepo repository.TransactionRepository
	sync   *SyncUseCase
	log    *logger.Logger
}

// NewStockChangeUseCase construye el caso de uso orquestador.
func NewStockChangeUseCase(
	ledger *LedgerUseCase,
	txRepo repository.TransactionRepository,
	sync *SyncUseCase,
	log *logger.Logger,
) *StockChangeUseCase {
	return &StockChangeUseCase{ledger: ledger, txRepo: txRepo, sync: sync, log: log}
}

// StockChangeInput entrada para Report.
// Quantity es positiva para SCAN_IN/WASTE/LOSS/DEFECT/TRANSFER y un delta con
// signo para ADJUSTMENT. BatchID vacío usa el lote centinela DEFAULT.
type StockChangeInput struct {
	SKU          string
	ItemName     string
	Location     string
	FromLocation string
	ToLocation   string
	BatchID      string
	Type         string
	Quantity     int64
	Notes        string
	PerformedBy  string
}

// StockChangeResult resultado del flujo: total resultante en la ubicación
// principal e IDs de las transacciones registradas (vacío si el log falló).
type StockChangeResult struct {
	SKU            string
	Location       string
	NewTotal       int64
	TransactionIDs []string
}

// Report ejecuta el flujo orquestado para un evento de stock.
func (uc *StockChangeUseCase) Report(ctx context.Context, input StockChangeInput) (*StockChangeResult, error) {
	batchID := input.BatchID
	if batchID == "" {
		batchID = entity.DefaultBatchID
	}

	switch input.Type {
	case entity.TxTypeScanIn, entity.TxTypeWaste, entity.TxTypeLoss, entity.TxTypeDefect:
		if input.SKU == "" || input.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if !domaininv.ValidLocation(input.Location) {
			return nil, domain.ErrInvalidLocation
		}
	case entity.TxTypeAdjustment:
		if input.SKU == "" || input.Quantity == 0 {
			return nil, domain.ErrInvalidInput
		}
		if !domaininv.ValidLocation(input.Location) {
			return nil, domain.ErrInvalidLocation
		}
	case entity.TxTypeTransfer:
		if input.SKU == "" || input.Quantity <= 0 || input.FromLocation == input.ToLocation {
			return nil, domain.ErrInvalidInput
		}
		if !domaininv.ValidLocation(input.FromLocation) || !domaininv.ValidLocation(input.ToLocation) {
			return nil, domain.ErrInvalidLocation
		}
		return uc.doTransfer(ctx, input, batchID)
	default:
		return nil, domain.ErrInvalidInput
	}

	// Delta con signo: WASTE/LOSS/DEFECT retiran stock; ADJUSTMENT ya trae signo.
	delta := input.Quantity
	switch input.Type {
	case entity.TxTypeWaste, entity.TxTypeLoss, entity.TxTypeDefect:
		delta = -input.Quantity
	}

	// Paso 2: mutación del ledger (única frontera sensible a fallos).
	var alloc *entity.BatchAllocation
	var err error
	if delta > 0 {
		alloc, err = uc.ledger.AddToBatchAllocation(ctx, input.SKU, input.Location, batchID, delta)
	} else {
		alloc, err = uc.ledger.RemoveFromBatchAllocation(ctx, input.SKU, input.Location, batchID, -delta)
	}
	if err != nil {
		return nil, err
	}

	// Pasos 3 y 4: best-effort forward.
	txID := uc.appendTransaction(input, batchID, input.Location, delta, alloc.TotalAllocated)
	uc.sync.SyncBestEffort(ctx, input.SKU, input.Location, &alloc.TotalAllocated)

	result := &StockChangeResult{
		SKU:      input.SKU,
		Location: input.Location,
		NewTotal: alloc.TotalAllocated,
	}
	if txID != "" {
		result.TransactionIDs = append(result.TransactionIDs, txID)
	}
	return result, nil
}

// doTransfer retira del origen y agrega en el destino. Son dos documentos
// distintos del ledger, cada uno con su propia transacción: no hay atomicidad
// entre ubicaciones (un lector puede observar el retiro antes que la entrada).
func (uc *StockChangeUseCase) doTransfer(ctx context.Context, input StockChangeInput, batchID string) (*StockChangeResult, error) {
	origin, err := uc.ledger.RemoveFromBatchAllocation(ctx, input.SKU, input.FromLocation, batchID, input.Quantity)
	if err != nil {
		return nil, err
	}
	dest, err := uc.ledger.AddToBatchAllocation(ctx, input.SKU, input.ToLocation, batchID, input.Quantity)
	if err != nil {
		// El retiro ya está confirmado: se deja rastro del lado origen (log +
		// proyección) para reconciliación manual antes de devolver el error.
		uc.log.Error().Err(err).
			Str("sku", input.SKU).
			Str("from", input.FromLocation).
			Str("to", input.ToLocation).
			Msg("traslado: la entrada en destino falló tras confirmar el retiro en origen")
		uc.appendTransaction(input, batchID, input.FromLocation, -input.Quantity, origin.TotalAllocated)
		uc.sync.SyncBestEffort(ctx, input.SKU, input.FromLocation, &origin.TotalAllocated)
		return nil, err
	}

	result := &StockChangeResult{
		SKU:      input.SKU,
		Location: input.ToLocation,
		NewTotal: dest.TotalAllocated,
	}
	if txID := uc.appendTransaction(input, batchID, input.FromLocation, -input.Quantity, origin.TotalAllocated); txID != "" {
		result.TransactionIDs = append(result.TransactionIDs, txID)
	}
	if txID := uc.appendTransaction(input, batchID, input.ToLocation, input.Quantity, dest.TotalAllocated); txID != "" {
		result.TransactionIDs = append(result.TransactionIDs, txID)
	}
	uc.sync.SyncBestEffort(ctx, input.SKU, input.FromLocation, &origin.TotalAllocated)
	uc.sync.SyncBestEffort(ctx, input.SKU, input.ToLocation, &dest.TotalAllocated)
	return result, nil
}

// appendTransaction registra la entrada en el log con snapshot antes/después
// (NewAmount = PreviousAmount + Amount al momento de crearse). Si falla, loggea
// y devuelve "" — el cambio de stock ya está confirmado y no se revierte.
func (uc *StockChangeUseCase) appendTransaction(input StockChangeInput, batchID, location string, delta, newTotal int64) string {
	tx := &entity.StockTransaction{
		ID:             uuid.New().String(),
		SKU:            input.SKU,
		ItemName:       input.ItemName,
		Amount:         delta,
		PreviousAmount: newTotal - delta,
		NewAmount:      newTotal,
		Location:       location,
		Type:           input.Type,
		Status:         entity.TxStatusCompleted,
		BatchID:        batchID,
		PerformedBy:    input.PerformedBy,
		Notes:          input.Notes,
		CreatedAt:      time.Now(),
	}
	if err := uc.txRepo.Create(tx); err != nil {
		uc.log.Error().Err(err).
			Str("sku", input.SKU).
			Str("location", location).
			Str("type", input.Type).
			Msg("registro en el log de transacciones falló; el cambio de stock ya está confirmado")
		return ""
	}
	return tx.ID
}
