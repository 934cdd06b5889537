package migration

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// legacyPrefix prefijo de los ids legados generados durante la migración.
const legacyPrefix = "LEG-"

// Runner ejecuta una corrida de migración: crea el lote, genera los mapeos
// de las ubicaciones activas aún sin mapear y actualiza los contadores del
// lote hasta dejarlo en estado terminal.
type Runner struct {
	locations repository.LocationRepository
	mappings  repository.MappingRepository
	batches   repository.BatchRepository
	log       *logger.Logger
}

// NewRunner construye el runner.
func NewRunner(locations repository.LocationRepository, mappings repository.MappingRepository, batches repository.BatchRepository, log *logger.Logger) *Runner {
	return &Runner{locations: locations, mappings: mappings, batches: batches, log: log}
}

// LegacyIDFor id legado canónico de una ubicación: LEG-<patio>-<código>.
func LegacyIDFor(loc *entity.Location) string {
	return legacyPrefix + loc.YardID + "-" + loc.LocationCode
}

// Run procesa hasta batchSize ubicaciones sin mapeo. Los mapeos se crean uno
// a uno (append-only); el fallo de una ubicación cuenta como fallida y no
// aborta el lote.
func (r *Runner) Run(ctx context.Context, batchSize int) (*entity.MigrationBatch, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	pending, err := r.locations.ListActiveWithoutMapping(ctx, batchSize)
	if err != nil {
		return nil, err
	}

	batch := &entity.MigrationBatch{
		ID:           uuid.NewString(),
		Status:       entity.BatchInProgress,
		TotalRecords: len(pending),
		StartedAt:    time.Now().UTC(),
	}
	if err := r.batches.Create(batch); err != nil {
		return nil, err
	}

	for _, loc := range pending {
		m := &entity.LocationIDMapping{
			ID:            uuid.NewString(),
			LegacyID:      LegacyIDFor(loc),
			NewLocationID: loc.ID,
			MigratedAt:    time.Now().UTC(),
		}
		if err := r.mappings.Create(m); err != nil {
			batch.FailedRecords++
			r.log.Warn().Err(err).
				Str("location_id", loc.ID).
				Str("legacy_id", m.LegacyID).
				Msg("no se pudo crear el mapeo")
			continue
		}
		batch.SuccessfulRecords++
	}

	now := time.Now().UTC()
	batch.CompletedAt = &now
	if batch.TotalRecords > 0 && batch.SuccessfulRecords == 0 {
		batch.Status = entity.BatchFailed
	} else {
		batch.Status = entity.BatchCompleted
	}
	if err := r.batches.Update(batch); err != nil {
		return nil, err
	}

	r.log.Info().
		Str("batch_id", batch.ID).
		Int("total", batch.TotalRecords).
		Int("ok", batch.SuccessfulRecords).
		Int("failed", batch.FailedRecords).
		Msg("lote de migración finalizado")
	return batch, nil
}
