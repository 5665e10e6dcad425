package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/domain"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// BatchUseCase casos de uso de lotes de producción: creación, consulta y
// transiciones de estado. La activación congela el packing list del lote.
type BatchUseCase struct {
	repo repository.BatchRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(repo repository.BatchRepository) *BatchUseCase {
	return &BatchUseCase{repo: repo}
}

// Create crea un lote en estado planning.
func (uc *BatchUseCase) Create(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	items := make([]entity.BatchItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.BatchItem{SKU: it.SKU, Name: it.Name, Qty: it.Qty})
	}
	batch := &entity.Batch{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Items:     items,
		CarVins:   in.CarVins,
		CarType:   in.CarType,
		TotalCars: in.TotalCars,
		Status:    entity.BatchStatusPlanning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote por ID.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch), nil
}

// List lista lotes con paginación.
func (uc *BatchUseCase) List(limit, offset int) (*dto.BatchListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return &dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Activate transiciona planning -> in_progress. A partir de aquí el packing
// list del lote es inmutable.
func (uc *BatchUseCase) Activate(id string) (*dto.BatchResponse, error) {
	return uc.transition(id, entity.BatchStatusPlanning, entity.BatchStatusInProgress)
}

// Complete transiciona in_progress -> completed.
func (uc *BatchUseCase) Complete(id string) (*dto.BatchResponse, error) {
	return uc.transition(id, entity.BatchStatusInProgress, entity.BatchStatusCompleted)
}

func (uc *BatchUseCase) transition(id, from, to string) (*dto.BatchResponse, error) {
	batch, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.Status != from {
		return nil, domain.ErrConflict
	}
	batch.Status = to
	batch.UpdatedAt = time.Now()
	if err := uc.repo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	items := make([]dto.BatchItemDTO, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.BatchItemDTO{SKU: it.SKU, Name: it.Name, Qty: it.Qty})
	}
	return &dto.BatchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Items:     items,
		CarVins:   b.CarVins,
		CarType:   b.CarType,
		TotalCars: b.TotalCars,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
