package repository

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para MigrationBatch.
type BatchRepository interface {
	Create(b *entity.MigrationBatch) error
	GetByID(id string) (*entity.MigrationBatch, error)
	GetLatest() (*entity.MigrationBatch, error)
	Update(b *entity.MigrationBatch) error

	// CountByStatus conteo de lotes por estado (in_progress/completed/failed).
	CountByStatus(ctx context.Context) (map[string]int, error)
}
