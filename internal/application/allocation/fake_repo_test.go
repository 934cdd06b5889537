package allocation

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// fakeLocationRepo implementación en memoria del puerto de ubicaciones, con
// la misma semántica condicional que el adaptador de PostgreSQL.
type fakeLocationRepo struct {
	byID map[string]*entity.Location

	// contadores de llamadas para verificar la coherencia de la caché
	listAvailableCalls int
	summaryCalls       int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[string]*entity.Location)}
}

func (f *fakeLocationRepo) put(loc *entity.Location) {
	cp := *loc
	f.byID[loc.ID] = &cp
}

func (f *fakeLocationRepo) Create(loc *entity.Location) error {
	f.put(loc)
	return nil
}

func (f *fakeLocationRepo) CreateBatch(locs []*entity.Location) error {
	for _, l := range locs {
		f.put(l)
	}
	return nil
}

func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) GetByCode(yardID, locationCode string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.YardID == yardID && l.LocationCode == locationCode {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) FindByCode(locationCode string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.LocationCode == locationCode {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) ListByStack(stackID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.byID {
		if l.StackID == stackID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLocationRepo) AssignIfFree(id, containerID, containerSize string, clientPoolID *string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok || l.IsOccupied || !l.IsActive {
		return nil, domain.Rule(id, domain.ErrLocationOccupied)
	}
	l.IsOccupied = true
	l.ContainerID = &containerID
	l.ContainerSize = &containerSize
	if clientPoolID != nil && *clientPoolID != "" {
		l.ClientPoolID = clientPoolID
	}
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) ReleaseIfOccupied(id string) (*entity.Location, error) {
	l, ok := f.byID[id]
	if !ok || !l.IsOccupied {
		return nil, domain.Rule(id, domain.ErrLocationNotOccupied)
	}
	l.IsOccupied = false
	l.ContainerID = nil
	l.ContainerSize = nil
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) ListAvailable(ctx context.Context, yardID string, fl repository.AvailabilityFilter) ([]*entity.Location, error) {
	f.listAvailableCalls++
	var out []*entity.Location
	for _, l := range f.byID {
		if l.YardID != yardID || !l.IsActive || l.IsOccupied {
			continue
		}
		if fl.ContainerSize != nil && l.ContainerSize != nil && *l.ContainerSize != *fl.ContainerSize {
			continue
		}
		if fl.ClientPoolID != nil {
			if l.ClientPoolID == nil || *l.ClientPoolID != *fl.ClientPoolID {
				continue
			}
		} else if l.ClientPoolID != nil {
			continue
		}
		if fl.StackID != nil && l.StackID != *fl.StackID {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocationCode < out[j].LocationCode })
	if fl.Limit > 0 && len(out) > fl.Limit {
		out = out[:fl.Limit]
	}
	return out, nil
}

func (f *fakeLocationRepo) DeactivateVirtualOfPair(stackAID, stackBID string) (int, int, error) {
	deactivated, occupied := 0, 0
	for _, l := range f.byID {
		if !l.IsVirtual || !l.IsActive {
			continue
		}
		if l.StackID != stackAID && l.StackID != stackBID {
			continue
		}
		if l.IsOccupied {
			occupied++
			continue
		}
		l.IsActive = false
		deactivated++
	}
	return deactivated, occupied, nil
}

func (f *fakeLocationRepo) CountActive(ctx context.Context) (int, error) {
	n := 0
	for _, l := range f.byID {
		if l.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeLocationRepo) ListActiveWithoutMapping(ctx context.Context, limit int) ([]*entity.Location, error) {
	return nil, nil
}

func (f *fakeLocationRepo) GetAvailabilitySummary(ctx context.Context, yardID string) (*repository.AvailabilitySummary, error) {
	f.summaryCalls++
	s := &repository.AvailabilitySummary{YardID: yardID}
	for _, l := range f.byID {
		if l.YardID != yardID || !l.IsActive {
			continue
		}
		s.TotalActive++
		if l.IsOccupied {
			s.TotalOccupied++
			continue
		}
		s.TotalAvailable++
		switch {
		case l.ContainerSize == nil:
			s.AvailableUnsized++
		case *l.ContainerSize == entity.Size20:
			s.AvailableBy20++
		case *l.ContainerSize == entity.Size40:
			s.AvailableBy40++
		}
		if l.ClientPoolID != nil {
			s.PooledAvailable++
		} else {
			s.UnpooledAvailable++
		}
	}
	return s, nil
}

func (f *fakeLocationRepo) GetYardStatistics(ctx context.Context, yardID string) (*repository.YardStatistics, error) {
	s := &repository.YardStatistics{YardID: yardID}
	for _, l := range f.byID {
		if l.YardID != yardID {
			continue
		}
		s.TotalLocations++
		if l.IsActive {
			s.ActiveLocations++
		}
		if l.IsOccupied {
			s.OccupiedCount++
		}
		if l.IsVirtual {
			s.VirtualCount++
		}
	}
	return s, nil
}

func (f *fakeLocationRepo) GetStackStatistics(ctx context.Context, yardID string, stackNumber int) (*repository.StackStatistics, error) {
	return &repository.StackStatistics{YardID: yardID, StackNumber: stackNumber}, nil
}
