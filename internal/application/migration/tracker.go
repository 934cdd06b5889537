package migration

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// Status estado agregado de la migración de identificadores.
type Status struct {
	TotalActiveLocations int
	MappedLocations      int
	UnmigratedLocations  int
	MigratedPercent      decimal.Decimal
	BatchesByStatus      map[string]int
}

// Tracker agrega conteos del almacén de ubicaciones, la tabla de mapeos y
// los lotes de migración. Solo lectura: no tiene operaciones mutantes.
type Tracker struct {
	locations repository.LocationRepository
	mappings  repository.MappingRepository
	batches   repository.BatchRepository
}

// NewTracker construye el tracker.
func NewTracker(locations repository.LocationRepository, mappings repository.MappingRepository, batches repository.BatchRepository) *Tracker {
	return &Tracker{locations: locations, mappings: mappings, batches: batches}
}

// Status calcula el avance actual de la migración.
func (t *Tracker) Status(ctx context.Context) (*Status, error) {
	total, err := t.locations.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	mapped, err := t.mappings.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := t.batches.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	unmigrated := total - mapped
	if unmigrated < 0 {
		// Mapeos históricos de ubicaciones ya eliminadas pueden superar el
		// total activo.
		unmigrated = 0
	}

	percent := decimal.NewFromInt(100)
	if total > 0 {
		done := total - unmigrated
		percent = decimal.NewFromInt(int64(done)).
			Div(decimal.NewFromInt(int64(total))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	return &Status{
		TotalActiveLocations: total,
		MappedLocations:      mapped,
		UnmigratedLocations:  unmigrated,
		MigratedPercent:      percent,
		BatchesByStatus:      byStatus,
	}, nil
}

// Report devuelve el lote indicado, o el más reciente si batchID es nil.
func (t *Tracker) Report(ctx context.Context, batchID *string) (*entity.MigrationBatch, error) {
	var (
		batch *entity.MigrationBatch
		err   error
	)
	if batchID != nil && *batchID != "" {
		batch, err = t.batches.GetByID(*batchID)
	} else {
		batch, err = t.batches.GetLatest()
	}
	if err != nil {
		return nil, err
	}
	if batch == nil {
		id := ""
		if batchID != nil {
			id = *batchID
		}
		return nil, domain.Rule(id, domain.ErrBatchNotFound)
	}
	return batch, nil
}
