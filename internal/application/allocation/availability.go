package allocation

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// AvailableLocations consulta las ubicaciones activas y libres del patio.
// La variante con pool es disjunta: con pool devuelve solo ubicaciones de
// ese pool; sin pool, solo ubicaciones sin pool asignado.
//
// Solo se cachean las consultas sin filtro de pila y sin límite; el resto va
// siempre al almacén.
func (uc *UseCase) AvailableLocations(ctx context.Context, yardID string, f repository.AvailabilityFilter) ([]*entity.Location, error) {
	cacheable := f.StackID == nil && f.Limit == 0
	if cacheable {
		if locs, ok := uc.cache.GetAvailable(yardID, f.ContainerSize, f.ClientPoolID); ok {
			return locs, nil
		}
	}

	locs, err := uc.locations.ListAvailable(ctx, yardID, f)
	if err != nil {
		return nil, err
	}
	if cacheable {
		uc.cache.SetAvailable(yardID, f.ContainerSize, f.ClientPoolID, locs)
	}
	return locs, nil
}

// AvailabilitySummary conteos por tamaño/ocupación/pool del patio (nivel warm).
func (uc *UseCase) AvailabilitySummary(ctx context.Context, yardID string) (*repository.AvailabilitySummary, error) {
	if s, ok := uc.cache.GetSummary(yardID); ok {
		return s, nil
	}
	s, err := uc.locations.GetAvailabilitySummary(ctx, yardID)
	if err != nil {
		return nil, err
	}
	uc.cache.SetSummary(yardID, s)
	return s, nil
}

// YardStatistics vista pre-agregada de ocupación por patio (nivel warm).
func (uc *UseCase) YardStatistics(ctx context.Context, yardID string) (*repository.YardStatistics, error) {
	if s, ok := uc.cache.GetYardStats(yardID); ok {
		return s, nil
	}
	s, err := uc.locations.GetYardStatistics(ctx, yardID)
	if err != nil {
		return nil, err
	}
	uc.cache.SetYardStats(yardID, s)
	return s, nil
}

// StackStatistics vista pre-agregada de ocupación por pila (nivel warm).
func (uc *UseCase) StackStatistics(ctx context.Context, yardID string, stackNumber int) (*repository.StackStatistics, error) {
	if s, ok := uc.cache.GetStackStats(yardID, stackNumber); ok {
		return s, nil
	}
	s, err := uc.locations.GetStackStatistics(ctx, yardID, stackNumber)
	if err != nil {
		return nil, err
	}
	uc.cache.SetStackStats(yardID, stackNumber, s)
	return s, nil
}
