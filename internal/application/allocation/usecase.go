package allocation

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// UseCase motor de asignación de ubicaciones: aplica la cadena de validación
// y delega en el almacén la actualización condicional que sirve de frontera
// de concurrencia (dos assigns concurrentes a la misma ubicación no pueden
// ganar ambos).
type UseCase struct {
	locations repository.LocationRepository
	cache     *Cache
	log       *logger.Logger
}

// NewUseCase construye el motor de asignación.
func NewUseCase(locations repository.LocationRepository, cache *Cache, log *logger.Logger) *UseCase {
	return &UseCase{locations: locations, cache: cache, log: log}
}

// AssignInput datos de una asignación de contenedor a ubicación.
type AssignInput struct {
	ContainerID   string
	ContainerSize string  // entity.Size20 | entity.Size40
	ClientPoolID  *string // debe coincidir con el pool de la ubicación (ambos nil o ambos iguales)
}

// Assign asigna un contenedor a la ubicación. Cadena de validación en orden,
// gana el primer fallo y no hay efectos secundarios en fallo:
//
//	existe -> libre -> activa -> tamaño compatible -> acceso por pool
//
// En éxito persiste vía actualización condicional, invalida la caché del
// patio y devuelve el registro actualizado.
func (uc *UseCase) Assign(ctx context.Context, locationID string, in AssignInput) (*entity.Location, error) {
	if in.ContainerID == "" || (in.ContainerSize != entity.Size20 && in.ContainerSize != entity.Size40) {
		return nil, domain.Rule(locationID, domain.ErrInvalidInput)
	}

	loc, err := uc.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAssignable(loc, locationID, &in.ContainerSize, in.ClientPoolID); err != nil {
		return nil, err
	}

	updated, err := uc.locations.AssignIfFree(locationID, in.ContainerID, in.ContainerSize, in.ClientPoolID)
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateYard(updated.YardID)
	uc.log.Info().
		Str("location_id", updated.ID).
		Str("container_id", in.ContainerID).
		Str("size", in.ContainerSize).
		Msg("contenedor asignado")
	return updated, nil
}

// Release libera la ubicación. Valida existencia y ocupación; si se indica
// containerID debe coincidir con el almacenado. En éxito limpia ocupación y
// tamaño, invalida la caché y devuelve el registro actualizado.
func (uc *UseCase) Release(ctx context.Context, locationID string, containerID *string) (*entity.Location, error) {
	loc, err := uc.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.Rule(locationID, domain.ErrLocationNotFound)
	}
	if !loc.IsOccupied {
		return nil, domain.Rule(locationID, domain.ErrLocationNotOccupied)
	}
	if containerID != nil && (loc.ContainerID == nil || *loc.ContainerID != *containerID) {
		return nil, domain.Rule(locationID, domain.ErrContainerMismatch)
	}

	updated, err := uc.locations.ReleaseIfOccupied(locationID)
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateYard(updated.YardID)
	uc.log.Info().
		Str("location_id", updated.ID).
		Msg("ubicación liberada")
	return updated, nil
}

// IsAvailable aplica las reglas de asignación en modo solo lectura (las
// verificaciones 2–5 de la cadena). La ubicación inexistente es error; las
// demás reglas violadas devuelven false sin error.
func (uc *UseCase) IsAvailable(ctx context.Context, locationID string, containerSize, clientPoolID *string) (bool, error) {
	loc, err := uc.locations.GetByID(locationID)
	if err != nil {
		return false, err
	}
	if loc == nil {
		return false, domain.Rule(locationID, domain.ErrLocationNotFound)
	}
	if err := uc.checkAssignable(loc, locationID, containerSize, clientPoolID); err != nil {
		return false, nil
	}
	return true, nil
}

// checkAssignable verificaciones 2–5 en orden: libre, activa, tamaño, pool.
// containerSize nil omite la verificación de tamaño (consulta sin tamaño).
func (uc *UseCase) checkAssignable(loc *entity.Location, locationID string, containerSize, clientPoolID *string) error {
	if loc == nil {
		return domain.Rule(locationID, domain.ErrLocationNotFound)
	}
	if loc.IsOccupied {
		return domain.Rule(locationID, domain.ErrLocationOccupied)
	}
	if !loc.IsActive {
		return domain.Rule(locationID, domain.ErrLocationInactive)
	}
	if containerSize != nil && loc.ContainerSize != nil && *loc.ContainerSize != *containerSize {
		return domain.Rule(locationID, domain.ErrSizeMismatch)
	}
	// Pool: ambos vacíos o ambos iguales; cualquier otro caso falla.
	reqPool := clientPoolID != nil && *clientPoolID != ""
	switch {
	case loc.HasPool() && !reqPool:
		return domain.Rule(locationID, domain.ErrPoolAccessDenied)
	case loc.HasPool() && *loc.ClientPoolID != *clientPoolID:
		return domain.Rule(locationID, domain.ErrPoolAccessDenied)
	case !loc.HasPool() && reqPool:
		return domain.Rule(locationID, domain.ErrPoolAccessDenied)
	}
	return nil
}

// BulkAssignItem una asignación dentro de un lote.
type BulkAssignItem struct {
	LocationID string
	Input      AssignInput
}

// BulkReleaseItem una liberación dentro de un lote.
type BulkReleaseItem struct {
	LocationID  string
	ContainerID *string
}

// BulkResult resultado por ítem de una operación en lote.
type BulkResult struct {
	LocationID string
	OK         bool
	Code       string // código estable del error cuando OK es false
	Message    string
	Location   *entity.Location
}

// BulkAssign procesa el lote secuencialmente; cada ítem es una transacción
// independiente. El fallo de un ítem no aborta el lote ni revierte los
// anteriores.
func (uc *UseCase) BulkAssign(ctx context.Context, items []BulkAssignItem) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, it := range items {
		loc, err := uc.Assign(ctx, it.LocationID, it.Input)
		results = append(results, toBulkResult(it.LocationID, loc, err))
	}
	return results
}

// BulkRelease procesa el lote secuencialmente, con la misma semántica de
// fallo por ítem que BulkAssign.
func (uc *UseCase) BulkRelease(ctx context.Context, items []BulkReleaseItem) []BulkResult {
	results := make([]BulkResult, 0, len(items))
	for _, it := range items {
		loc, err := uc.Release(ctx, it.LocationID, it.ContainerID)
		results = append(results, toBulkResult(it.LocationID, loc, err))
	}
	return results
}

func toBulkResult(locationID string, loc *entity.Location, err error) BulkResult {
	if err != nil {
		return BulkResult{
			LocationID: locationID,
			OK:         false,
			Code:       domain.CodeOf(err),
			Message:    err.Error(),
		}
	}
	return BulkResult{LocationID: locationID, OK: true, Location: loc}
}
