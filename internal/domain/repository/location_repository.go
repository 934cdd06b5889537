package repository

import (
	"context"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AvailabilityFilter filtros opcionales del listado de disponibilidad.
// ClientPoolID divide la consulta en dos ramas disjuntas: con valor devuelve
// solo ubicaciones de ese pool; sin valor, solo ubicaciones sin pool.
type AvailabilityFilter struct {
	ContainerSize *string
	ClientPoolID  *string
	StackID       *string
	Limit         int // 0 = sin límite
}

// AvailabilitySummary conteos de disponibilidad por tamaño y pool de un patio.
type AvailabilitySummary struct {
	YardID            string
	TotalActive       int
	TotalOccupied     int
	TotalAvailable    int
	AvailableBy20     int
	AvailableBy40     int
	AvailableUnsized  int // activas, libres y sin tamaño fijado aún
	PooledAvailable   int
	UnpooledAvailable int
}

// YardStatistics vista pre-agregada de ocupación por patio.
type YardStatistics struct {
	YardID           string
	TotalLocations   int
	ActiveLocations  int
	OccupiedCount    int
	VirtualCount     int
	OccupancyPercent decimal.Decimal
}

// StackStatistics vista pre-agregada de ocupación por pila.
type StackStatistics struct {
	YardID           string
	StackID          string
	StackNumber      int
	TotalLocations   int
	OccupiedCount    int
	OccupancyPercent decimal.Decimal
}

// LocationRepository define el puerto de persistencia para Location (DIP).
//
// AssignIfFree y ReleaseIfOccupied son actualizaciones condicionales de una
// sola fila: el WHERE incluye la precondición de ocupación, de modo que dos
// asignaciones concurrentes sobre la misma ubicación no pueden ganar ambas.
// Cero filas afectadas se reporta como domain.ErrLocationOccupied /
// domain.ErrLocationNotOccupied.
type LocationRepository interface {
	Create(loc *entity.Location) error
	CreateBatch(locs []*entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(yardID, locationCode string) (*entity.Location, error)
	// FindByCode busca por código en todos los patios (ruta de compatibilidad:
	// el id legado puede no traer patio).
	FindByCode(locationCode string) (*entity.Location, error)
	ListByStack(stackID string) ([]*entity.Location, error)

	AssignIfFree(id, containerID, containerSize string, clientPoolID *string) (*entity.Location, error)
	ReleaseIfOccupied(id string) (*entity.Location, error)

	// ListAvailable devuelve solo ubicaciones activas y libres del patio.
	ListAvailable(ctx context.Context, yardID string, f AvailabilityFilter) ([]*entity.Location, error)

	// DeactivateVirtualOfPair desactiva las ubicaciones virtuales libres del
	// par de pilas; devuelve cuántas desactivó y cuántas quedaron ocupadas
	// (y por tanto intactas).
	DeactivateVirtualOfPair(stackAID, stackBID string) (deactivated, occupied int, err error)

	// Agregaciones para el tracker de migración y las estadísticas.
	CountActive(ctx context.Context) (int, error)
	ListActiveWithoutMapping(ctx context.Context, limit int) ([]*entity.Location, error)
	GetAvailabilitySummary(ctx context.Context, yardID string) (*AvailabilitySummary, error)
	GetYardStatistics(ctx context.Context, yardID string) (*YardStatistics, error)
	GetStackStatistics(ctx context.Context, yardID string, stackNumber int) (*StackStatistics, error)
}
