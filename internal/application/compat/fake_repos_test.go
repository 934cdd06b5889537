package compat

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// fakeMappingRepo almacén de mapeos en memoria con fallo conmutable para
// probar la degradación a "no migrado".
type fakeMappingRepo struct {
	byLegacy map[string]*entity.LocationIDMapping
	byNew    map[string]*entity.LocationIDMapping
	ordered  []*entity.LocationIDMapping
	failing  bool
}

func newFakeMappingRepo() *fakeMappingRepo {
	return &fakeMappingRepo{
		byLegacy: make(map[string]*entity.LocationIDMapping),
		byNew:    make(map[string]*entity.LocationIDMapping),
	}
}

func (f *fakeMappingRepo) add(legacyID, newID string) *entity.LocationIDMapping {
	m := &entity.LocationIDMapping{ID: legacyID + "/" + newID, LegacyID: legacyID, NewLocationID: newID}
	f.byLegacy[legacyID] = m
	f.byNew[newID] = m
	f.ordered = append(f.ordered, m)
	return m
}

func (f *fakeMappingRepo) Create(m *entity.LocationIDMapping) error {
	if _, ok := f.byLegacy[m.LegacyID]; ok {
		return errors.New("mapeo duplicado")
	}
	f.byLegacy[m.LegacyID] = m
	f.byNew[m.NewLocationID] = m
	f.ordered = append(f.ordered, m)
	return nil
}

func (f *fakeMappingRepo) GetByLegacyID(legacyID string) (*entity.LocationIDMapping, error) {
	if f.failing {
		return nil, errors.New("almacén no disponible")
	}
	return f.byLegacy[legacyID], nil
}

func (f *fakeMappingRepo) GetByNewLocationID(newID string) (*entity.LocationIDMapping, error) {
	if f.failing {
		return nil, errors.New("almacén no disponible")
	}
	return f.byNew[newID], nil
}

func (f *fakeMappingRepo) List(ctx context.Context, limit, offset int) ([]*entity.LocationIDMapping, error) {
	if f.failing {
		return nil, errors.New("almacén no disponible")
	}
	out := append([]*entity.LocationIDMapping(nil), f.ordered...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeMappingRepo) Count(ctx context.Context) (int, error) {
	return len(f.ordered), nil
}

// fakeLocations almacén de ubicaciones mínimo para la capa de compatibilidad.
type fakeLocations struct {
	byID map[string]*entity.Location
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{byID: make(map[string]*entity.Location)}
}

func (f *fakeLocations) add(id, code string) *entity.Location {
	l := &entity.Location{ID: id, LocationCode: code, YardID: "YARD01", IsActive: true}
	f.byID[id] = l
	return l
}

func (f *fakeLocations) Create(l *entity.Location) error { f.byID[l.ID] = l; return nil }
func (f *fakeLocations) CreateBatch(ls []*entity.Location) error {
	for _, l := range ls {
		f.byID[l.ID] = l
	}
	return nil
}

func (f *fakeLocations) GetByID(id string) (*entity.Location, error) { return f.byID[id], nil }

func (f *fakeLocations) GetByCode(yardID, code string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.YardID == yardID && l.LocationCode == code {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocations) FindByCode(code string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.LocationCode == code {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocations) ListByStack(stackID string) ([]*entity.Location, error) { return nil, nil }

func (f *fakeLocations) AssignIfFree(id, containerID, containerSize string, clientPoolID *string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok || l.IsOccupied {
		return nil, domain.Rule(id, domain.ErrLocationOccupied)
	}
	l.IsOccupied = true
	l.ContainerID = &containerID
	l.ContainerSize = &containerSize
	return l, nil
}

func (f *fakeLocations) ReleaseIfOccupied(id string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok || !l.IsOccupied {
		return nil, domain.Rule(id, domain.ErrLocationNotOccupied)
	}
	l.IsOccupied = false
	l.ContainerID = nil
	l.ContainerSize = nil
	return l, nil
}

func (f *fakeLocations) ListAvailable(ctx context.Context, yardID string, fl repository.AvailabilityFilter) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.byID {
		if l.YardID == yardID && l.IsActive && !l.IsOccupied && l.ClientPoolID == nil {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	return out, nil
}

func (f *fakeLocations) DeactivateVirtualOfPair(a, b string) (int, int, error) { return 0, 0, nil }

func (f *fakeLocations) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, l := range f.byID {
		if l.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeLocations) ListActiveWithoutMapping(ctx context.Context, limit int) ([]*entity.Location, error) {
	return nil, nil
}

func (f *fakeLocations) GetAvailabilitySummary(ctx context.Context, yardID string) (*repository.AvailabilitySummary, error) {
	return &repository.AvailabilitySummary{YardID: yardID}, nil
}

func (f *fakeLocations) GetYardStatistics(ctx context.Context, yardID string) (*repository.YardStatistics, error) {
	return &repository.YardStatistics{YardID: yardID}, nil
}

func (f *fakeLocations) GetStackStatistics(ctx context.Context, yardID string, stackNumber int) (*repository.StackStatistics, error) {
	return &repository.StackStatistics{YardID: yardID, StackNumber: stackNumber}, nil
}
