package repository

import "github.com/jhoicas/Bodega-api/internal/domain/entity"

// BatchRepository puerto de persistencia de lotes de producción.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	List(limit, offset int) ([]*entity.Batch, error)
	Update(batch *entity.Batch) error
}
