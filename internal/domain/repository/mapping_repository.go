package repository

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// MappingRepository define el puerto de persistencia para LocationIDMapping.
// La tabla es append-only: no hay update ni delete.
type MappingRepository interface {
	Create(m *entity.LocationIDMapping) error
	GetByLegacyID(legacyID string) (*entity.LocationIDMapping, error)
	GetByNewLocationID(newLocationID string) (*entity.LocationIDMapping, error)

	// List devuelve mapeos en orden de migración (para warmup y muestreo).
	List(ctx context.Context, limit, offset int) ([]*entity.LocationIDMapping, error)
	Count(ctx context.Context) (int, error)
}
