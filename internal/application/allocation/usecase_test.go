package allocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

func filterNone() repository.AvailabilityFilter { return repository.AvailabilityFilter{} }

func ptr(s string) *string { return &s }

func newTestUseCase(repo *fakeLocationRepo) *UseCase {
	return NewUseCase(repo, NewCache(time.Minute, 3*time.Minute), logger.Nop())
}

func freeLocation(id, code string) *entity.Location {
	return &entity.Location{
		ID:           id,
		LocationCode: code,
		StackID:      "stack-1",
		YardID:       "YARD01",
		RowNumber:    2,
		TierNumber:   3,
		IsActive:     true,
	}
}

func TestAssignValidationChainOrder(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	// Entrada inválida gana antes de consultar el almacén.
	_, err := uc.Assign(ctx, "U-x", AssignInput{ContainerID: "", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Assign(ctx, "U-x", AssignInput{ContainerID: "CONT1", ContainerSize: "30ft"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Inexistente.
	_, err = uc.Assign(ctx, "U-missing", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	// Ocupada gana sobre inactiva: una ubicación ocupada e inactiva reporta ocupación.
	busy := freeLocation("U-busy", "S01R1H1")
	busy.IsOccupied = true
	busy.ContainerID = ptr("OTHER")
	busy.IsActive = false
	repo.put(busy)
	_, err = uc.Assign(ctx, "U-busy", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)

	// Inactiva.
	inactive := freeLocation("U-off", "S01R1H2")
	inactive.IsActive = false
	repo.put(inactive)
	_, err = uc.Assign(ctx, "U-off", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrLocationInactive)

	// Tamaño incompatible.
	sized := freeLocation("U-20", "S01R1H3")
	sized.ContainerSize = ptr(entity.Size20)
	repo.put(sized)
	_, err = uc.Assign(ctx, "U-20", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size40})
	assert.ErrorIs(t, err, domain.ErrSizeMismatch)

	// Pool incompatible (tamaño ya compatible).
	pooled := freeLocation("U-pool", "S01R1H4")
	pooled.ClientPoolID = ptr("POOL-A")
	repo.put(pooled)
	_, err = uc.Assign(ctx, "U-pool", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrPoolAccessDenied)
}

func TestAssignOccupiedLeavesStateUntouched(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	loc := freeLocation("U-1", "S01R2H3")
	loc.IsOccupied = true
	loc.ContainerID = ptr("ORIGINAL")
	loc.ContainerSize = ptr(entity.Size20)
	repo.put(loc)

	_, err := uc.Assign(ctx, "U-1", AssignInput{ContainerID: "INTRUDER", ContainerSize: entity.Size20})
	require.ErrorIs(t, err, domain.ErrLocationOccupied)

	stored, _ := repo.GetByID("U-1")
	assert.Equal(t, "ORIGINAL", *stored.ContainerID)
	assert.True(t, stored.IsOccupied)
}

func TestPoolAccessMatrix(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	withPool := freeLocation("U-p", "S03R1H1")
	withPool.ClientPoolID = ptr("POOL-A")
	repo.put(withPool)
	noPool := freeLocation("U-n", "S03R1H2")
	repo.put(noPool)

	cases := []struct {
		name string
		id   string
		pool *string
		want bool
	}{
		{"pool coincide", "U-p", ptr("POOL-A"), true},
		{"pool distinto", "U-p", ptr("POOL-B"), false},
		{"ubicación con pool, petición sin pool", "U-p", nil, false},
		{"ubicación sin pool, petición con pool", "U-n", ptr("POOL-A"), false},
		{"ambos sin pool", "U-n", nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := uc.IsAvailable(ctx, tc.id, ptr(entity.Size20), tc.pool)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestAssignReleaseLifecycle(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.put(freeLocation("U-1", "S01R2H3"))

	// Asignar.
	loc, err := uc.Assign(ctx, "U-1", AssignInput{ContainerID: "MSCU1234567", ContainerSize: entity.Size20})
	require.NoError(t, err)
	assert.True(t, loc.IsOccupied)
	assert.Equal(t, "MSCU1234567", *loc.ContainerID)
	assert.Equal(t, entity.Size20, *loc.ContainerSize)

	// Asignar de nuevo falla sin alterar nada.
	_, err = uc.Assign(ctx, "U-1", AssignInput{ContainerID: "OTRO", ContainerSize: entity.Size20})
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)

	// Liberar con contenedor equivocado falla.
	_, err = uc.Release(ctx, "U-1", ptr("OTRO"))
	assert.ErrorIs(t, err, domain.ErrContainerMismatch)

	// Liberar con el contenedor correcto limpia ocupación y tamaño.
	released, err := uc.Release(ctx, "U-1", ptr("MSCU1234567"))
	require.NoError(t, err)
	assert.False(t, released.IsOccupied)
	assert.Nil(t, released.ContainerID)
	assert.Nil(t, released.ContainerSize)

	// Vuelve a estar disponible para cualquier tamaño.
	ok, err := uc.IsAvailable(ctx, "U-1", ptr(entity.Size40), nil)
	require.NoError(t, err)
	assert.True(t, ok)

	// Liberar una ubicación ya libre falla.
	_, err = uc.Release(ctx, "U-1", nil)
	assert.ErrorIs(t, err, domain.ErrLocationNotOccupied)
}

func TestIsAvailableNotFoundIsError(t *testing.T) {
	uc := newTestUseCase(newFakeLocationRepo())
	_, err := uc.IsAvailable(context.Background(), "U-missing", nil, nil)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestAvailableLocationsCacheCoherence(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.put(freeLocation("U-1", "S03R1H1"))
	repo.put(freeLocation("U-2", "S03R1H2"))

	// Primera consulta llena la caché; la segunda no toca el almacén.
	first, err := uc.AvailableLocations(ctx, "YARD01", filterNone())
	require.NoError(t, err)
	assert.Len(t, first, 2)
	_, err = uc.AvailableLocations(ctx, "YARD01", filterNone())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listAvailableCalls)

	// Un assign invalida el patio: la siguiente consulta vuelve al almacén
	// y ya no lista la ubicación ocupada.
	_, err = uc.Assign(ctx, "U-1", AssignInput{ContainerID: "CONT1", ContainerSize: entity.Size20})
	require.NoError(t, err)
	after, err := uc.AvailableLocations(ctx, "YARD01", filterNone())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listAvailableCalls)
	assert.Len(t, after, 1)
	assert.Equal(t, "U-2", after[0].ID)
}

func TestAvailabilitySummaryCached(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.put(freeLocation("U-1", "S03R1H1"))

	_, err := uc.AvailabilitySummary(ctx, "YARD01")
	require.NoError(t, err)
	_, err = uc.AvailabilitySummary(ctx, "YARD01")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.summaryCalls)
}

func TestBulkAssignPartialFailure(t *testing.T) {
	repo := newFakeLocationRepo()
	uc := newTestUseCase(repo)
	ctx := context.Background()

	repo.put(freeLocation("U-1", "S03R1H1"))
	busy := freeLocation("U-2", "S03R1H2")
	busy.IsOccupied = true
	busy.ContainerID = ptr("X")
	repo.put(busy)
	repo.put(freeLocation("U-3", "S03R1H3"))

	results := uc.BulkAssign(ctx, []BulkAssignItem{
		{LocationID: "U-1", Input: AssignInput{ContainerID: "C1", ContainerSize: entity.Size20}},
		{LocationID: "U-2", Input: AssignInput{ContainerID: "C2", ContainerSize: entity.Size20}},
		{LocationID: "U-3", Input: AssignInput{ContainerID: "C3", ContainerSize: entity.Size20}},
	})

	require.Len(t, results, 3)
	assert.True(t, results[0].OK)
	assert.False(t, results[1].OK)
	assert.Equal(t, "LOCATION_OCCUPIED", results[1].Code)
	// El fallo del segundo ítem no impide el tercero.
	assert.True(t, results[2].OK)

	third, _ := repo.GetByID("U-3")
	assert.True(t, third.IsOccupied)
}
