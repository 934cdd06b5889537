package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Son conflictos de estado de negocio: nunca se reintentan automáticamente.
var (
	// Not-found
	ErrLocationNotFound = errors.New("ubicación no encontrada")
	ErrStackNotFound    = errors.New("pila no encontrada")
	ErrBatchNotFound    = errors.New("lote de migración no encontrado")
	ErrMappingNotFound  = errors.New("mapeo de identificador no encontrado")

	// State-conflict
	ErrLocationOccupied    = errors.New("la ubicación ya está ocupada")
	ErrLocationNotOccupied = errors.New("la ubicación no está ocupada")
	ErrLocationInactive    = errors.New("la ubicación está inactiva")
	ErrPairOccupied        = errors.New("la pila tiene ubicaciones virtuales ocupadas")

	// Compatibility-violation
	ErrSizeMismatch      = errors.New("el tamaño del contenedor no coincide con el de la ubicación")
	ErrPoolAccessDenied  = errors.New("el pool de cliente no coincide con el de la ubicación")
	ErrContainerMismatch = errors.New("el contenedor indicado no es el almacenado en la ubicación")
	ErrSpecialStackSize  = errors.New("una pila especial no admite el tamaño mayor")
	ErrNoPairAvailable   = errors.New("la pila no tiene pareja válida para el tamaño mayor")

	// Format-violation
	ErrInvalidLocationCode = errors.New("código de ubicación con formato inválido")

	ErrInvalidInput = errors.New("entrada inválida")
)

// errorCodes código estable por error centinela (contrato con los clientes de la API).
var errorCodes = map[error]string{
	ErrLocationNotFound:    "LOCATION_NOT_FOUND",
	ErrStackNotFound:       "STACK_NOT_FOUND",
	ErrBatchNotFound:       "BATCH_NOT_FOUND",
	ErrMappingNotFound:     "MAPPING_NOT_FOUND",
	ErrLocationOccupied:    "LOCATION_OCCUPIED",
	ErrLocationNotOccupied: "LOCATION_NOT_OCCUPIED",
	ErrLocationInactive:    "LOCATION_INACTIVE",
	ErrPairOccupied:        "PAIR_OCCUPIED",
	ErrSizeMismatch:        "SIZE_MISMATCH",
	ErrPoolAccessDenied:    "POOL_ACCESS_DENIED",
	ErrContainerMismatch:   "CONTAINER_MISMATCH",
	ErrSpecialStackSize:    "SPECIAL_STACK_SIZE",
	ErrNoPairAvailable:     "NO_PAIR_AVAILABLE",
	ErrInvalidLocationCode: "INVALID_LOCATION_CODE",
	ErrInvalidInput:        "VALIDATION",
}

// CodeOf devuelve el código estable del error de negocio, o "INTERNAL" si no es uno.
func CodeOf(err error) string {
	for sentinel, code := range errorCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return "INTERNAL"
}

// RuleError envuelve un centinela con el identificador que violó la regla.
// Mantiene errors.Is sobre el centinela y expone Code() para la capa HTTP.
type RuleError struct {
	ID  string // id de la ubicación/pila/lote ofensor
	Err error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Err.Error())
}

func (e *RuleError) Unwrap() error { return e.Err }

// Code devuelve el código estable del centinela envuelto.
func (e *RuleError) Code() string { return CodeOf(e.Err) }

// Rule construye un RuleError para el identificador dado.
func Rule(id string, sentinel error) *RuleError {
	return &RuleError{ID: id, Err: sentinel}
}
