package entity

import "time"

// LocationIDMapping una fila por ubicación migrada: id legado <-> id sintético.
// Se crea una sola vez durante la migración y nunca se muta después (append-only).
// Sobrevive a la ubicación: un mapeo de una ubicación eliminada queda como registro histórico.
type LocationIDMapping struct {
	ID            string
	LegacyID      string // id legado de formato libre, ej. "LEG-YARD1-S01R2H3"
	NewLocationID string // id sintético de la ubicación
	MigratedAt    time.Time
}
