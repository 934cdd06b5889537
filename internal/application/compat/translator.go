package compat

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// syntheticPrefix forma canónica del id sintético ("U-<sufijo>").
const syntheticPrefix = "U-"

// IsSyntheticID detecta si el identificador tiene la forma canónica sintética.
func IsSyntheticID(id string) bool {
	return strings.HasPrefix(id, syntheticPrefix) && len(id) > len(syntheticPrefix)
}

// Stats contadores de la capa de traducción. Se exponen para reportes y son
// reiniciables.
type Stats struct {
	TotalRequests     int64
	LegacyRequests    int64
	SyntheticRequests int64
	Translated        int64 // traducciones resueltas
	NotTranslated     int64 // sin mapeo (o almacén degradado a "no migrado")
	CacheHits         int64
	CacheMisses       int64
}

// Translator caché bidireccional en memoria id legado <-> id sintético.
//
// Se construye explícitamente y se inyecta (sin singletons de paquete) para
// que los tests corran con instancias aisladas. Ambos mapas y los contadores
// se mueven bajo el mismo mutex: un acierto en cualquier dirección puebla
// las dos vistas.
//
// Un fallo del almacén de mapeos degrada a "no migrado" (nil, sin error):
// la traducción nunca tumba la operación que la pidió.
type Translator struct {
	mappings repository.MappingRepository
	log      *logger.Logger

	mu          sync.RWMutex
	legacyToNew map[string]string
	newToLegacy map[string]string
	stats       Stats
}

// NewTranslator construye el traductor con caché vacía.
func NewTranslator(mappings repository.MappingRepository, log *logger.Logger) *Translator {
	return &Translator{
		mappings:    mappings,
		log:         log,
		legacyToNew: make(map[string]string),
		newToLegacy: make(map[string]string),
	}
}

// LegacyToSynthetic traduce un id legado a sintético. Devuelve nil si no hay
// mapeo (id no migrado).
func (t *Translator) LegacyToSynthetic(ctx context.Context, legacyID string) *string {
	t.mu.Lock()
	t.stats.TotalRequests++
	t.stats.LegacyRequests++
	if id, ok := t.legacyToNew[legacyID]; ok {
		t.stats.CacheHits++
		t.stats.Translated++
		t.mu.Unlock()
		return &id
	}
	t.stats.CacheMisses++
	t.mu.Unlock()

	m, err := t.mappings.GetByLegacyID(legacyID)
	if err != nil {
		t.degrade("legacy_id", legacyID, err)
		return nil
	}
	if m == nil {
		t.miss()
		return nil
	}
	t.store(m)
	return &m.NewLocationID
}

// SyntheticToLegacy traduce un id sintético a legado. Devuelve nil si no hay
// mapeo.
func (t *Translator) SyntheticToLegacy(ctx context.Context, newID string) *string {
	t.mu.Lock()
	t.stats.TotalRequests++
	t.stats.SyntheticRequests++
	if legacy, ok := t.newToLegacy[newID]; ok {
		t.stats.CacheHits++
		t.stats.Translated++
		t.mu.Unlock()
		return &legacy
	}
	t.stats.CacheMisses++
	t.mu.Unlock()

	m, err := t.mappings.GetByNewLocationID(newID)
	if err != nil {
		t.degrade("new_id", newID, err)
		return nil
	}
	if m == nil {
		t.miss()
		return nil
	}
	t.store(m)
	return &m.LegacyID
}

// Warmup precarga hasta limit mapeos en la caché. Devuelve cuántos cargó.
func (t *Translator) Warmup(ctx context.Context, limit int) (int, error) {
	ms, err := t.mappings.List(ctx, limit, 0)
	if err != nil {
		return 0, err
	}
	t.mu.Lock()
	for _, m := range ms {
		t.legacyToNew[m.LegacyID] = m.NewLocationID
		t.newToLegacy[m.NewLocationID] = m.LegacyID
	}
	t.mu.Unlock()
	return len(ms), nil
}

// ClearCache vacía ambos mapas; los contadores no se tocan.
func (t *Translator) ClearCache() {
	t.mu.Lock()
	t.legacyToNew = make(map[string]string)
	t.newToLegacy = make(map[string]string)
	t.mu.Unlock()
}

// CacheSize entradas actuales por dirección.
func (t *Translator) CacheSize() (legacy, synthetic int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.legacyToNew), len(t.newToLegacy)
}

// SnapshotStats copia consistente de los contadores.
func (t *Translator) SnapshotStats() Stats {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.stats
}

// ResetStats pone todos los contadores a cero.
func (t *Translator) ResetStats() {
	t.mu.Lock()
	t.stats = Stats{}
	t.mu.Unlock()
}

func (t *Translator) store(m *entity.LocationIDMapping) {
	t.mu.Lock()
	t.legacyToNew[m.LegacyID] = m.NewLocationID
	t.newToLegacy[m.NewLocationID] = m.LegacyID
	t.stats.Translated++
	t.mu.Unlock()
}

func (t *Translator) miss() {
	t.mu.Lock()
	t.stats.NotTranslated++
	t.mu.Unlock()
}

func (t *Translator) degrade(field, id string, err error) {
	t.log.Warn().Err(err).Str(field, id).
		Msg("almacén de mapeos no disponible; se degrada a 'no migrado'")
	t.miss()
}
