// Package yard contiene la lógica pura del patio: emparejamiento de pilas
// para contenedores de 40 pies y validación de códigos de ubicación.
//
// Reglas de emparejamiento (deben reproducirse exactamente):
//   - Las pilas especiales {1, 31, 101, 103} quedan bloqueadas al tamaño
//     menor y nunca forman pareja.
//   - Las demás pilas se agrupan en secciones numéricas contiguas (3–29,
//     33–55, 61–99). Dentro de cada sección, los números "primeros" van del
//     inicio de la sección con paso 4 (3,7,11,...); cada primero f se
//     empareja con f+2.
//
// Las listas literales por sección del sistema original se reemplazan aquí
// por la tabla de límites más la regla aritmética de paso 4; los tests
// validan la expansión contra las listas literales.
package yard

// Section límites de una sección contigua de pilas emparejables.
type Section struct {
	ID    string
	Start int // primer número de pila de la sección (también primer "primero")
	End   int // último número de pila de la sección
}

// firstStride separación entre números "primeros" dentro de una sección.
const firstStride = 4

// pairOffset distancia entre un "primero" y su pareja.
const pairOffset = 2

// Sections tabla declarativa de secciones del patio.
var Sections = []Section{
	{ID: "A", Start: 3, End: 29},
	{ID: "B", Start: 33, End: 55},
	{ID: "C", Start: 61, End: 99},
}

// specialStacks pilas bloqueadas permanentemente al tamaño menor.
var specialStacks = map[int]bool{
	1:   true,
	31:  true,
	101: true,
	103: true,
}

// IsSpecialStack indica si la pila está bloqueada al tamaño menor.
func IsSpecialStack(n int) bool {
	return specialStacks[n]
}

// SectionOf devuelve la sección que contiene la pila, si existe.
func SectionOf(n int) (Section, bool) {
	for _, s := range Sections {
		if n >= s.Start && n <= s.End {
			return s, true
		}
	}
	return Section{}, false
}

// AdjacentStackNumber devuelve la pila pareja de n, si n participa en un par.
// Devuelve (0, false) si n es especial, está fuera de toda sección, o no es
// ni "primero" ni "segundo" de un par.
func AdjacentStackNumber(n int) (int, bool) {
	if IsSpecialStack(n) {
		return 0, false
	}
	sec, ok := SectionOf(n)
	if !ok {
		return 0, false
	}
	switch (n - sec.Start) % firstStride {
	case 0:
		return n + pairOffset, true
	case pairOffset:
		return n - pairOffset, true
	}
	return 0, false
}

// CanPairForLargerSize indica si n puede, por aritmética de secciones,
// combinarse con una pareja para alojar el tamaño mayor. La existencia real
// de la pila pareja en el almacén se valida en el caso de uso.
func CanPairForLargerSize(n int) bool {
	partner, ok := AdjacentStackNumber(n)
	if !ok {
		return false
	}
	return !IsSpecialStack(partner)
}

// FirstNumbers expande los números "primeros" de una sección (paso 4).
// Existe para que los tests comparen la regla aritmética con las listas
// literales del sistema original.
func FirstNumbers(s Section) []int {
	var out []int
	for f := s.Start; f+pairOffset <= s.End; f += firstStride {
		out = append(out, f)
	}
	return out
}
