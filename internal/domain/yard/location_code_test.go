package yard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patio-api/internal/domain"
	"github.com/jhoicas/Patio-api/internal/domain/yard"
)

func TestParseLocationCode_Valido(t *testing.T) {
	code, err := yard.ParseLocationCode("S01R2H3")
	require.NoError(t, err)
	assert.Equal(t, 1, code.StackNumber)
	assert.Equal(t, 2, code.RowNumber)
	assert.Equal(t, 3, code.TierNumber)
	assert.Equal(t, "S01R2H3", code.Raw)
}

func TestValidateLocationCode_Rechazos(t *testing.T) {
	invalid := []string{
		"",
		"S1R2H3",    // pila con un solo dígito
		"S012R2H3",  // pila con tres dígitos
		"s01R2H3",   // letra minúscula
		"S01r2H3",   // separador R minúsculo
		"S01R22H3",  // fila de dos dígitos
		"S01R2H",    // falta nivel
		"S01R2H3X",  // sufijo extra
		"01R2H3",    // falta letra
		"S01-R2-H3", // separadores no permitidos
	}
	for _, code := range invalid {
		err := yard.ValidateLocationCode(code)
		require.Error(t, err, "code=%q", code)
		assert.ErrorIs(t, err, domain.ErrInvalidLocationCode, "code=%q", code)
	}
}

func TestFormatLocationCode_Canonico(t *testing.T) {
	assert.Equal(t, "S01R2H3", yard.FormatLocationCode(1, 2, 3))
	assert.Equal(t, "S45R1H5", yard.FormatLocationCode(45, 1, 5))
}
