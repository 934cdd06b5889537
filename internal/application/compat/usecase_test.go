package compat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

func strp(s string) *string { return &s }

func newCompatFixture() (*UseCase, *fakeMappingRepo, *fakeLocations) {
	mappings := newFakeMappingRepo()
	locations := newFakeLocations()
	translator := NewTranslator(mappings, logger.Nop())
	allocator := allocation.NewUseCase(locations, allocation.NewCache(time.Minute, time.Minute), logger.Nop())
	uc := NewUseCase(translator, allocator, locations, logger.Nop())
	return uc, mappings, locations
}

func TestGetLocationBySyntheticID(t *testing.T) {
	uc, mappings, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")
	mappings.add("LEG-YARD01-S01R2H3", "U-aaa")
	locations.add("U-bbb", "S03R1H1") // sin mapeo

	lookup, err := uc.GetLocation(context.Background(), "U-aaa")
	require.NoError(t, err)
	assert.Equal(t, "U-aaa", lookup.Location.ID)
	assert.True(t, lookup.IsMigrated)
	assert.Equal(t, "synthetic", lookup.ResolvedVia)

	// Sintético sin mapeo: resuelve igual, pero no está migrado.
	lookup, err = uc.GetLocation(context.Background(), "U-bbb")
	require.NoError(t, err)
	assert.False(t, lookup.IsMigrated)
	assert.Equal(t, "synthetic", lookup.ResolvedVia)
}

func TestGetLocationByLegacyID(t *testing.T) {
	uc, mappings, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")
	mappings.add("LEG-YARD01-S01R2H3", "U-aaa")

	lookup, err := uc.GetLocation(context.Background(), "LEG-YARD01-S01R2H3")
	require.NoError(t, err)
	assert.Equal(t, "U-aaa", lookup.Location.ID)
	assert.True(t, lookup.IsMigrated)
	assert.Equal(t, "mapping", lookup.ResolvedVia)
}

func TestGetLocationByDirectCode(t *testing.T) {
	uc, _, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")

	// Sin mapeo, pero el id es el código propio del registro.
	lookup, err := uc.GetLocation(context.Background(), "S01R2H3")
	require.NoError(t, err)
	assert.Equal(t, "U-aaa", lookup.Location.ID)
	assert.False(t, lookup.IsMigrated)
	assert.Equal(t, "direct", lookup.ResolvedVia)
}

func TestGetLocationUnknownID(t *testing.T) {
	uc, _, _ := newCompatFixture()
	_, err := uc.GetLocation(context.Background(), "LEG-YARD01-S99R9H9")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestAssignAcceptsLegacyID(t *testing.T) {
	uc, mappings, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")
	mappings.add("LEG-YARD01-S01R2H3", "U-aaa")

	loc, err := uc.Assign(context.Background(), "LEG-YARD01-S01R2H3", allocation.AssignInput{
		ContainerID:   "MSCU1234567",
		ContainerSize: entity.Size20,
	})
	require.NoError(t, err)
	assert.True(t, loc.IsOccupied)

	// Liberar con la otra forma de id opera sobre el mismo registro.
	released, err := uc.Release(context.Background(), "U-aaa", strp("MSCU1234567"))
	require.NoError(t, err)
	assert.False(t, released.IsOccupied)
}

func TestSearchWithLegacyID(t *testing.T) {
	uc, mappings, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")
	mappings.add("LEG-YARD01-S01R2H3", "U-aaa")

	res, err := uc.Search(context.Background(), SearchQuery{LegacyID: strp("LEG-YARD01-S01R2H3")})
	require.NoError(t, err)
	require.Len(t, res.Locations, 1)
	assert.Equal(t, "U-aaa", res.Locations[0].ID)
	require.NotNil(t, res.TranslatedID)
	assert.Equal(t, "U-aaa", *res.TranslatedID)

	// Id legado sin mapeo: resultado vacío, sin error.
	res, err = uc.Search(context.Background(), SearchQuery{LegacyID: strp("LEG-YARD01-S99R9H9")})
	require.NoError(t, err)
	assert.Empty(t, res.Locations)
	assert.Nil(t, res.TranslatedID)
}

func TestSearchWithoutLegacyIDUsesAvailability(t *testing.T) {
	uc, _, locations := newCompatFixture()
	locations.add("U-aaa", "S01R2H3")
	locations.add("U-bbb", "S03R1H1")

	res, err := uc.Search(context.Background(), SearchQuery{YardID: "YARD01"})
	require.NoError(t, err)
	assert.Len(t, res.Locations, 2)
	assert.Nil(t, res.TranslatedID)
}

func TestBatchTranslatePartialResult(t *testing.T) {
	uc, mappings, _ := newCompatFixture()
	mappings.add("LEG-1", "U-1")
	mappings.add("LEG-2", "U-2")

	out := uc.BatchTranslate(context.Background(), []string{
		"LEG-1",      // legado mapeado
		"U-2",        // sintético mapeado (dirección inversa)
		"LEG-nada",   // legado sin mapeo: omitido
		"U-sinmapeo", // sintético sin mapeo: omitido
	})

	assert.Equal(t, map[string]string{
		"LEG-1": "U-1",
		"U-2":   "LEG-2",
	}, out)
}

func TestValidateCompatibility(t *testing.T) {
	uc, mappings, locations := newCompatFixture()

	// Mapeo sano: traducciones y registro recuperable.
	locations.add("U-1", "S01R2H3")
	mappings.add("LEG-1", "U-1")
	// Mapeo de ubicación eliminada: advertencia, no error.
	mappings.add("LEG-2", "U-gone")

	report, err := uc.ValidateCompatibility(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, 2, report.SamplesChecked)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 0, report.Failed)
	assert.True(t, report.Success)
	assert.Equal(t, "100", report.SuccessRate.String())

	// La única observación es la advertencia del registro irrecuperable.
	require.Len(t, report.Issues, 1)
	assert.Equal(t, IssueWarning, report.Issues[0].Kind)
	assert.Equal(t, "LEG-2", report.Issues[0].LegacyID)
}

func TestValidateCompatibilityEmptyStore(t *testing.T) {
	uc, _, _ := newCompatFixture()
	report, err := uc.ValidateCompatibility(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 0, report.SamplesChecked)
	assert.True(t, report.Success)
	assert.Equal(t, "100", report.SuccessRate.String())
}
