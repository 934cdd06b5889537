package entity

import "time"

// Tamaños de contenedor soportados por el patio.
const (
	Size20 = "20ft"
	Size40 = "40ft"
)

// Location representa un slot de almacenamiento del patio (físico o virtual).
//
// Invariantes:
//   - !IsOccupied => ContainerID == nil
//   - ContainerSize, una vez fijado, solo se limpia al liberar; nunca se
//     sobreescribe mientras la ubicación está ocupada.
//   - VirtualStackPairID solo está presente cuando IsVirtual es true.
type Location struct {
	ID           string // id sintético, inmutable (forma canónica "U-<uuid>")
	LocationCode string // código legible, patrón S<pila>R<fila>H<nivel>, ej. S01R2H3
	StackID      string
	YardID       string

	RowNumber  int
	TierNumber int

	IsVirtual          bool
	VirtualStackPairID *string // pila pareja; solo cuando IsVirtual

	IsOccupied    bool
	ContainerID   *string // presente sii IsOccupied
	ContainerSize *string // Size20 | Size40; nil hasta la primera asignación
	ClientPoolID  *string // restringe el acceso por pool de cliente

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPool indica si la ubicación está reservada a un pool de cliente.
func (l *Location) HasPool() bool {
	return l.ClientPoolID != nil && *l.ClientPoolID != ""
}
