package usecase

import (
	"time"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// TransactionUseCase consulta del log de transacciones y flujo de aprobación:
// una transacción PENDING puede transicionar a COMPLETED o CANCELLED; cualquier
// otra mutación está prohibida (el log es append-only).
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// ListBySKU lista transacciones de un SKU en un rango de fechas.
func (uc *TransactionUseCase) ListBySKU(sku string, from, to *time.Time, limit, offset int) ([]dto.TransactionResponse, error) {
	list, err := uc.repo.ListBySKU(sku, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// ListByLocation lista transacciones de una ubicación en un rango de fechas.
func (uc *TransactionUseCase) ListByLocation(location string, from, to *time.Time, limit, offset int) ([]dto.TransactionResponse, error) {
	list, err := uc.repo.ListByLocation(location, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(list), nil
}

// UpdateStatus transiciona una transacción PENDING a COMPLETED o CANCELLED.
// Devuelve ErrConflict si la transacción ya no está PENDING.
func (uc *TransactionUseCase) UpdateStatus(id, status string) error {
	if status != entity.TxStatusCompleted && status != entity.TxStatusCancelled {
		return domain.ErrInvalidInput
	}
	ok, err := uc.repo.UpdateStatus(id, status)
	if err != nil {
		return err
	}
	if !ok {
		existing, err := uc.repo.GetByID(id)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

func toTransactionResponses(list []*entity.StockTransaction) []dto.TransactionResponse {
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.TransactionResponse{
			ID:             t.ID,
			SKU:            t.SKU,
			ItemName:       t.ItemName,
			Amount:         t.Amount,
			PreviousAmount: t.PreviousAmount,
			NewAmount:      t.NewAmount,
			Location:       t.Location,
			Type:           t.Type,
			Status:         t.Status,
			BatchID:        t.BatchID,
			PerformedBy:    t.PerformedBy,
			Notes:          t.Notes,
			CreatedAt:      t.CreatedAt,
		})
	}
	return out
}
