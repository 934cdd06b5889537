package dto

import (
	"time"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// MigrationStatusResponse avance agregado de la migración de identificadores.
type MigrationStatusResponse struct {
	TotalActiveLocations int            `json:"total_active_locations"`
	MappedLocations      int            `json:"mapped_locations"`
	UnmigratedLocations  int            `json:"unmigrated_locations"`
	MigratedPercent      string         `json:"migrated_percent"`
	BatchesByStatus      map[string]int `json:"batches_by_status"`
}

// MigrationBatchResponse estado de un lote de migración.
type MigrationBatchResponse struct {
	ID                string     `json:"id"`
	Status            string     `json:"status"`
	TotalRecords      int        `json:"total_records"`
	SuccessfulRecords int        `json:"successful_records"`
	FailedRecords     int        `json:"failed_records"`
	StartedAt         time.Time  `json:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

// FromBatch convierte la entidad a su representación HTTP.
func FromBatch(b *entity.MigrationBatch) MigrationBatchResponse {
	return MigrationBatchResponse{
		ID:                b.ID,
		Status:            b.Status,
		TotalRecords:      b.TotalRecords,
		SuccessfulRecords: b.SuccessfulRecords,
		FailedRecords:     b.FailedRecords,
		StartedAt:         b.StartedAt,
		CompletedAt:       b.CompletedAt,
	}
}

// RunMigrationRequest parámetros para lanzar un lote de migración.
type RunMigrationRequest struct {
	BatchSize int `json:"batch_size" validate:"min=0,max=10000"`
}
