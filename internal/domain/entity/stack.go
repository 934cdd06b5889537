package entity

import "time"

// Stack representa una columna nombrada de ubicaciones dentro de una sección del patio.
type Stack struct {
	ID                 string
	StackNumber        int
	SectionID          string
	YardID             string
	ContainerSize      string // Size20 | Size40 (tamaño configurado de la pila)
	IsSpecialStack     bool   // bloqueada al tamaño menor; nunca forma pareja
	Capacity           int
	CurrentOccupancy   int
	AssignedClientCode string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
