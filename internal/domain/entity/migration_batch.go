package entity

import "time"

// Estados de un lote de migración. Terminal una vez que deja de estar en progreso.
const (
	BatchInProgress = "in_progress"
	BatchCompleted  = "completed"
	BatchFailed     = "failed"
)

// MigrationBatch registra una corrida de migración de identificadores legados.
type MigrationBatch struct {
	ID                string
	Status            string // BatchInProgress | BatchCompleted | BatchFailed
	TotalRecords      int
	SuccessfulRecords int
	FailedRecords     int
	StartedAt         time.Time
	CompletedAt       *time.Time // nil mientras el lote está en progreso
}

// IsTerminal indica si el lote ya no admite actualizaciones.
func (b *MigrationBatch) IsTerminal() bool {
	return b.Status != BatchInProgress
}
