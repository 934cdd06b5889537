package compat

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/internal/domain/yard"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// UseCase capa de compatibilidad: acepta cualquiera de las dos formas de
// identificador (legado o sintético), traduce una sola vez en la frontera y
// delega en el motor de asignación, cuyos internos solo ven ids sintéticos.
type UseCase struct {
	translator *Translator
	allocator  *allocation.UseCase
	locations  repository.LocationRepository
	log        *logger.Logger
}

// NewUseCase construye la capa de compatibilidad.
func NewUseCase(translator *Translator, allocator *allocation.UseCase, locations repository.LocationRepository, log *logger.Logger) *UseCase {
	return &UseCase{translator: translator, allocator: allocator, locations: locations, log: log}
}

// LocationLookup resultado de una búsqueda por cualquier forma de id.
type LocationLookup struct {
	Location    *entity.Location
	IsMigrated  bool   // true si se llegó vía un mapeo migrado
	ResolvedVia string // "synthetic" | "mapping" | "direct"
}

// GetLocation autodetecta la forma del identificador. Un id legado se
// traduce; si no hay mapeo, intenta la búsqueda directa por el código propio
// del registro antes de reportar no encontrado.
func (uc *UseCase) GetLocation(ctx context.Context, anyID string) (*LocationLookup, error) {
	if IsSyntheticID(anyID) {
		loc, err := uc.locations.GetByID(anyID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.Rule(anyID, domain.ErrLocationNotFound)
		}
		legacy := uc.translator.SyntheticToLegacy(ctx, anyID)
		return &LocationLookup{Location: loc, IsMigrated: legacy != nil, ResolvedVia: "synthetic"}, nil
	}

	if newID := uc.translator.LegacyToSynthetic(ctx, anyID); newID != nil {
		loc, err := uc.locations.GetByID(*newID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.Rule(anyID, domain.ErrLocationNotFound)
		}
		return &LocationLookup{Location: loc, IsMigrated: true, ResolvedVia: "mapping"}, nil
	}

	// Sin mapeo: el id puede ser directamente el código de la ubicación.
	if err := yard.ValidateLocationCode(anyID); err == nil {
		loc, err := uc.locations.FindByCode(anyID)
		if err != nil {
			return nil, err
		}
		if loc != nil {
			return &LocationLookup{Location: loc, IsMigrated: false, ResolvedVia: "direct"}, nil
		}
	}
	return nil, domain.Rule(anyID, domain.ErrLocationNotFound)
}

// resolveID reduce cualquier forma de id al id sintético interno.
func (uc *UseCase) resolveID(ctx context.Context, anyID string) (string, error) {
	if IsSyntheticID(anyID) {
		return anyID, nil
	}
	if newID := uc.translator.LegacyToSynthetic(ctx, anyID); newID != nil {
		return *newID, nil
	}
	if err := yard.ValidateLocationCode(anyID); err == nil {
		loc, err := uc.locations.FindByCode(anyID)
		if err != nil {
			return "", err
		}
		if loc != nil {
			return loc.ID, nil
		}
	}
	return "", domain.Rule(anyID, domain.ErrLocationNotFound)
}

// Assign variante de asignación que acepta cualquier forma de id.
func (uc *UseCase) Assign(ctx context.Context, anyID string, in allocation.AssignInput) (*entity.Location, error) {
	id, err := uc.resolveID(ctx, anyID)
	if err != nil {
		return nil, err
	}
	return uc.allocator.Assign(ctx, id, in)
}

// Release variante de liberación que acepta cualquier forma de id.
func (uc *UseCase) Release(ctx context.Context, anyID string, containerID *string) (*entity.Location, error) {
	id, err := uc.resolveID(ctx, anyID)
	if err != nil {
		return nil, err
	}
	return uc.allocator.Release(ctx, id, containerID)
}

// SearchQuery consulta de compatibilidad con id legado opcional.
type SearchQuery struct {
	LegacyID *string
	YardID   string
	Filter   repository.AvailabilityFilter
}

// SearchResult resultado de Search; TranslatedID presente cuando la consulta
// traía id legado y se resolvió.
type SearchResult struct {
	Locations    []*entity.Location
	TranslatedID *string
}

// Search con id legado resuelve esa única ubicación; sin él delega en el
// listado de disponibilidad del motor.
func (uc *UseCase) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.LegacyID != nil && *q.LegacyID != "" {
		newID := uc.translator.LegacyToSynthetic(ctx, *q.LegacyID)
		if newID == nil {
			return &SearchResult{}, nil
		}
		loc, err := uc.locations.GetByID(*newID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return &SearchResult{TranslatedID: newID}, nil
		}
		return &SearchResult{Locations: []*entity.Location{loc}, TranslatedID: newID}, nil
	}
	locs, err := uc.allocator.AvailableLocations(ctx, q.YardID, q.Filter)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Locations: locs}, nil
}

// BatchTranslate traduce una lista de ids (en cualquier dirección, detectada
// por id) y devuelve el mapa parcial de los resueltos; los irresolubles se
// omiten sin error.
func (uc *UseCase) BatchTranslate(ctx context.Context, ids []string) map[string]string {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if IsSyntheticID(id) {
			if legacy := uc.translator.SyntheticToLegacy(ctx, id); legacy != nil {
				out[id] = *legacy
			}
			continue
		}
		if newID := uc.translator.LegacyToSynthetic(ctx, id); newID != nil {
			out[id] = *newID
		}
	}
	return out
}

// Warmup precarga la caché de traducción.
func (uc *UseCase) Warmup(ctx context.Context, limit int) (int, error) {
	return uc.translator.Warmup(ctx, limit)
}

// ClearCache vacía la caché de traducción.
func (uc *UseCase) ClearCache() { uc.translator.ClearCache() }

// Stats devuelve los contadores actuales de traducción.
func (uc *UseCase) Stats() Stats { return uc.translator.SnapshotStats() }

// ResetStats reinicia los contadores de traducción.
func (uc *UseCase) ResetStats() { uc.translator.ResetStats() }
