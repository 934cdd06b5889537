package yard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patio-api/internal/domain/yard"
)

// Listas literales de números "primeros" por sección, tomadas del sistema
// original. La regla aritmética (inicio de sección + paso 4) debe expandir
// exactamente a estas listas; si alguien toca la tabla de secciones o el
// paso, estos tests fallan de inmediato.
var literalFirstNumbers = map[string][]int{
	"A": {3, 7, 11, 15, 19, 23, 27},
	"B": {33, 37, 41, 45, 49, 53},
	"C": {61, 65, 69, 73, 77, 81, 85, 89, 93, 97},
}

func TestFirstNumbers_CoincidenConListasLiterales(t *testing.T) {
	for _, sec := range yard.Sections {
		expected, ok := literalFirstNumbers[sec.ID]
		require.True(t, ok, "sección %s sin lista literal de referencia", sec.ID)
		assert.Equal(t, expected, yard.FirstNumbers(sec), "sección %s", sec.ID)
	}
}

func TestAdjacentStackNumber_PrimeroYSegundo(t *testing.T) {
	cases := []struct {
		n       int
		partner int
		ok      bool
	}{
		{3, 5, true},   // primero -> primero+2
		{5, 3, true},   // segundo -> segundo-2
		{27, 29, true}, // último primero de la sección A
		{29, 27, true},
		{33, 35, true},
		{97, 99, true},
		{99, 97, true},
		{4, 0, false}, // número intermedio: no participa en pares
		{6, 0, false},
		{1, 0, false},  // especial
		{31, 0, false}, // especial
		{101, 0, false},
		{103, 0, false},
		{2, 0, false},  // fuera de toda sección
		{30, 0, false}, // hueco entre secciones
		{56, 0, false},
		{100, 0, false},
	}
	for _, c := range cases {
		partner, ok := yard.AdjacentStackNumber(c.n)
		assert.Equal(t, c.ok, ok, "n=%d", c.n)
		if c.ok {
			assert.Equal(t, c.partner, partner, "n=%d", c.n)
		}
	}
}

// El emparejamiento es involutivo: Adjacent(Adjacent(n)) == n para todo n de
// sección que participa en un par.
func TestAdjacentStackNumber_Involutivo(t *testing.T) {
	for _, sec := range yard.Sections {
		for n := sec.Start; n <= sec.End; n++ {
			partner, ok := yard.AdjacentStackNumber(n)
			if !ok {
				continue
			}
			back, ok2 := yard.AdjacentStackNumber(partner)
			require.True(t, ok2, "la pareja de %d (=%d) debe participar en un par", n, partner)
			assert.Equal(t, n, back, "Adjacent(Adjacent(%d))", n)
		}
	}
}

func TestCanPairForLargerSize_EspecialesSiempreFalse(t *testing.T) {
	for _, n := range []int{1, 31, 101, 103} {
		assert.False(t, yard.CanPairForLargerSize(n), "pila especial %d", n)
		assert.True(t, yard.IsSpecialStack(n))
	}
}

func TestCanPairForLargerSize_MiembrosDePar(t *testing.T) {
	assert.True(t, yard.CanPairForLargerSize(3))
	assert.True(t, yard.CanPairForLargerSize(5))
	assert.True(t, yard.CanPairForLargerSize(61))
	assert.False(t, yard.CanPairForLargerSize(4))
	assert.False(t, yard.CanPairForLargerSize(30))
}

func TestSectionOf(t *testing.T) {
	sec, ok := yard.SectionOf(45)
	require.True(t, ok)
	assert.Equal(t, "B", sec.ID)

	// 31 vive en el hueco entre las secciones A y B
	_, ok = yard.SectionOf(31)
	assert.False(t, ok)
}
