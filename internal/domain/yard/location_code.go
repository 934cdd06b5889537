package yard

import (
	"regexp"
	"strconv"

	"github.com/jhoicas/Patio-api/internal/domain"
)

// locationCodeRe patrón fijo del código de ubicación: una letra, dos dígitos
// de pila, literal R, un dígito de fila, literal H, un dígito de nivel.
// Ej.: S01R2H3.
var locationCodeRe = regexp.MustCompile(`^[A-Z]\d{2}R\dH\d$`)

// LocationCode partes de un código de ubicación ya validado.
type LocationCode struct {
	Raw         string
	StackNumber int
	RowNumber   int
	TierNumber  int
}

// ValidateLocationCode verifica el formato del código. Se invoca antes de
// cualquier acceso al almacén en rutas de creación o búsqueda por código.
func ValidateLocationCode(code string) error {
	if !locationCodeRe.MatchString(code) {
		return domain.Rule(code, domain.ErrInvalidLocationCode)
	}
	return nil
}

// ParseLocationCode valida y descompone el código en pila/fila/nivel.
func ParseLocationCode(code string) (LocationCode, error) {
	if err := ValidateLocationCode(code); err != nil {
		return LocationCode{}, err
	}
	stack, _ := strconv.Atoi(code[1:3])
	row, _ := strconv.Atoi(code[4:5])
	tier, _ := strconv.Atoi(code[6:7])
	return LocationCode{Raw: code, StackNumber: stack, RowNumber: row, TierNumber: tier}, nil
}

// FormatLocationCode construye el código canónico de una posición.
func FormatLocationCode(stackNumber, row, tier int) string {
	return "S" + pad2(stackNumber) + "R" + strconv.Itoa(row) + "H" + strconv.Itoa(tier)
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
