package stacks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

// ── Fakes en memoria ──────────────────────────────────────────────────────────

type fakeStackRepo struct {
	byNumber map[int]*entity.Stack
}

func newFakeStackRepo() *fakeStackRepo {
	return &fakeStackRepo{byNumber: make(map[int]*entity.Stack)}
}

func (f *fakeStackRepo) addStack(number int, size string, special bool) *entity.Stack {
	s := &entity.Stack{
		ID:             fmt.Sprintf("stack-%d", number),
		StackNumber:    number,
		SectionID:      "A",
		YardID:         "YARD01",
		ContainerSize:  size,
		IsSpecialStack: special,
	}
	f.byNumber[number] = s
	return s
}

func (f *fakeStackRepo) Create(s *entity.Stack) error { f.byNumber[s.StackNumber] = s; return nil }

func (f *fakeStackRepo) GetByID(id string) (*entity.Stack, error) {
	for _, s := range f.byNumber {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStackRepo) GetByNumber(yardID string, n int) (*entity.Stack, error) {
	s, ok := f.byNumber[n]
	if !ok || s.YardID != yardID {
		return nil, nil
	}
	return s, nil
}

func (f *fakeStackRepo) UpdateContainerSize(id, size string) error {
	for _, s := range f.byNumber {
		if s.ID == id {
			s.ContainerSize = size
			return nil
		}
	}
	return fmt.Errorf("pila %s no encontrada", id)
}

func (f *fakeStackRepo) ListManaged(yardID string) ([]*entity.Stack, error) {
	var out []*entity.Stack
	for _, s := range f.byNumber {
		if s.YardID == yardID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StackNumber < out[j].StackNumber })
	return out, nil
}

type fakeLocRepo struct {
	byID map[string]*entity.Location
}

func newFakeLocRepo() *fakeLocRepo {
	return &fakeLocRepo{byID: make(map[string]*entity.Location)}
}

func (f *fakeLocRepo) Create(l *entity.Location) error { f.byID[l.ID] = l; return nil }

func (f *fakeLocRepo) CreateBatch(locs []*entity.Location) error {
	for _, l := range locs {
		// mismo upsert por (patio, código) que el adaptador real
		if prev := f.findByCode(l.YardID, l.LocationCode); prev != nil {
			prev.IsActive = true
			continue
		}
		f.byID[l.ID] = l
	}
	return nil
}

func (f *fakeLocRepo) findByCode(yardID, code string) *entity.Location {
	for _, l := range f.byID {
		if l.YardID == yardID && l.LocationCode == code {
			return l
		}
	}
	return nil
}

func (f *fakeLocRepo) GetByID(id string) (*entity.Location, error) { return f.byID[id], nil }

func (f *fakeLocRepo) GetByCode(yardID, code string) (*entity.Location, error) {
	return f.findByCode(yardID, code), nil
}

func (f *fakeLocRepo) FindByCode(code string) (*entity.Location, error) {
	for _, l := range f.byID {
		if l.LocationCode == code {
			return l, nil
		}
	}
	return nil, nil
}

func (f *fakeLocRepo) ListByStack(stackID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range f.byID {
		if l.StackID == stackID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLocRepo) AssignIfFree(id, containerID, containerSize string, clientPoolID *string) (*entity.Location, error) {
	return nil, nil
}

func (f *fakeLocRepo) ReleaseIfOccupied(id string) (*entity.Location, error) { return nil, nil }

func (f *fakeLocRepo) ListAvailable(ctx context.Context, yardID string, fl repository.AvailabilityFilter) ([]*entity.Location, error) {
	return nil, nil
}

func (f *fakeLocRepo) DeactivateVirtualOfPair(stackAID, stackBID string) (int, int, error) {
	deactivated, occupied := 0, 0
	for _, l := range f.byID {
		if !l.IsVirtual || !l.IsActive || (l.StackID != stackAID && l.StackID != stackBID) {
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

func (f *fakeLocRepo) CountActive(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeLocRepo) ListActiveWithoutMapping(ctx context.Context, limit int) ([]*entity.Location, error) {
	return nil, nil
}

func (f *fakeLocRepo) GetAvailabilitySummary(ctx context.Context, yardID string) (*repository.AvailabilitySummary, error) {
	return nil, nil
}

func (f *fakeLocRepo) GetYardStatistics(ctx context.Context, yardID string) (*repository.YardStatistics, error) {
	return nil, nil
}

func (f *fakeLocRepo) GetStackStatistics(ctx context.Context, yardID string, stackNumber int) (*repository.StackStatistics, error) {
	return nil, nil
}

type fakeTxRunner struct {
	stacks    *fakeStackRepo
	locations *fakeLocRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(repository.StackRepository, repository.LocationRepository) error) error {
	return fn(f.stacks, f.locations)
}

// ── Escenario ─────────────────────────────────────────────────────────────────

func newSizeFixture() (*UseCase, *fakeStackRepo, *fakeLocRepo) {
	stacksRepo := newFakeStackRepo()
	locRepo := newFakeLocRepo()
	tx := &fakeTxRunner{stacks: stacksRepo, locations: locRepo}
	uc := NewUseCase(tx, stacksRepo, allocation.NewCache(time.Minute, time.Minute), logger.Nop())
	return uc, stacksRepo, locRepo
}

func addPhysical(locRepo *fakeLocRepo, stack *entity.Stack, rows, tiers int) {
	for r := 1; r <= rows; r++ {
		for h := 1; h <= tiers; h++ {
			id := fmt.Sprintf("U-%s-%d-%d", stack.ID, r, h)
			locRepo.byID[id] = &entity.Location{
				ID:           id,
				LocationCode: fmt.Sprintf("S%02dR%dH%d", stack.StackNumber, r, h),
				StackID:      stack.ID,
				YardID:       stack.YardID,
				RowNumber:    r,
				TierNumber:   h,
				IsActive:     true,
			}
		}
	}
}

func TestUpsizePairsBothStacksAndMaterializesVirtual(t *testing.T) {
	uc, stacksRepo, locRepo := newSizeFixture()
	s3 := stacksRepo.addStack(3, entity.Size20, false)
	s5 := stacksRepo.addStack(5, entity.Size20, false)
	addPhysical(locRepo, s3, 2, 3)

	res, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	require.NoError(t, err)

	// Ambas pilas cambian juntas.
	require.Len(t, res.UpdatedStacks, 2)
	assert.Equal(t, entity.Size40, s3.ContainerSize)
	assert.Equal(t, entity.Size40, s5.ContainerSize)

	// Una virtual por coordenada física, en el número intermedio del par.
	assert.Equal(t, 6, res.VirtualCreated)
	virtuals, _ := locRepo.ListByStack(s3.ID)
	count := 0
	for _, v := range virtuals {
		if !v.IsVirtual {
			continue
		}
		count++
		assert.True(t, strings.HasPrefix(v.LocationCode, "S04R"))
		assert.True(t, strings.HasPrefix(v.ID, "U-"))
		require.NotNil(t, v.VirtualStackPairID)
		assert.Equal(t, s5.ID, *v.VirtualStackPairID)
		assert.True(t, v.IsActive)
	}
	assert.Equal(t, 6, count)
}

func TestUpsizeSpecialStackFails(t *testing.T) {
	uc, stacksRepo, _ := newSizeFixture()
	stacksRepo.addStack(1, entity.Size20, true)

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 1, entity.Size40)
	assert.ErrorIs(t, err, domain.ErrSpecialStackSize)
}

func TestUpsizeWithoutStoredPartnerFails(t *testing.T) {
	uc, stacksRepo, _ := newSizeFixture()
	s3 := stacksRepo.addStack(3, entity.Size20, false)
	// la pila 5 no existe en el almacén

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	assert.ErrorIs(t, err, domain.ErrNoPairAvailable)
	// Sin cambio parcial.
	assert.Equal(t, entity.Size20, s3.ContainerSize)
}

func TestUpsizeOutsideSectionsFails(t *testing.T) {
	uc, stacksRepo, _ := newSizeFixture()
	stacksRepo.addStack(31, entity.Size20, true)

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 31, entity.Size40)
	assert.ErrorIs(t, err, domain.ErrSpecialStackSize)
}

func TestDownsizeDeactivatesFreeVirtualsAndKeepsPartner(t *testing.T) {
	uc, stacksRepo, locRepo := newSizeFixture()
	s3 := stacksRepo.addStack(3, entity.Size20, false)
	stacksRepo.addStack(5, entity.Size20, false)
	addPhysical(locRepo, s3, 1, 2)

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	require.NoError(t, err)

	res, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size20)
	require.NoError(t, err)

	assert.Equal(t, entity.Size20, s3.ContainerSize)
	// Solo la pila nombrada cambia; la pareja conserva su tamaño.
	assert.Equal(t, entity.Size40, stacksRepo.byNumber[5].ContainerSize)
	assert.Equal(t, 2, res.VirtualDeactivated)
	for _, l := range locRepo.byID {
		if l.IsVirtual {
			assert.False(t, l.IsActive)
		}
	}
}

func TestDownsizeBlockedByOccupiedVirtual(t *testing.T) {
	uc, stacksRepo, locRepo := newSizeFixture()
	s3 := stacksRepo.addStack(3, entity.Size20, false)
	stacksRepo.addStack(5, entity.Size20, false)
	addPhysical(locRepo, s3, 1, 1)

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	require.NoError(t, err)

	// Ocupar todas las virtuales del par.
	container := "TGHU9999999"
	for _, l := range locRepo.byID {
		if l.IsVirtual {
			l.IsOccupied = true
			l.ContainerID = &container
		}
	}

	_, err = uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size20)
	assert.ErrorIs(t, err, domain.ErrPairOccupied)
	assert.Equal(t, entity.Size40, s3.ContainerSize)
}

func TestReUpsizeReactivatesVirtuals(t *testing.T) {
	uc, stacksRepo, locRepo := newSizeFixture()
	s3 := stacksRepo.addStack(3, entity.Size20, false)
	stacksRepo.addStack(5, entity.Size20, false)
	addPhysical(locRepo, s3, 1, 2)

	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	require.NoError(t, err)
	_, err = uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size20)
	require.NoError(t, err)
	_, err = uc.ChangeContainerSize(context.Background(), "YARD01", 3, entity.Size40)
	require.NoError(t, err)

	// El upsert por código reactiva sin duplicar.
	active := 0
	for _, l := range locRepo.byID {
		if l.IsVirtual {
			assert.True(t, l.IsActive)
			active++
		}
	}
	assert.Equal(t, 2, active)
}

func TestChangeSizeRejectsUnknownSize(t *testing.T) {
	uc, _, _ := newSizeFixture()
	_, err := uc.ChangeContainerSize(context.Background(), "YARD01", 3, "45ft")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
