package dto

import (
	"time"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// AssignLocationRequest entrada para asignar un contenedor a una ubicación.
type AssignLocationRequest struct {
	ContainerID   string  `json:"container_id" validate:"required"`
	ContainerSize string  `json:"container_size" validate:"required,oneof=20ft 40ft"`
	ClientPoolID  *string `json:"client_pool_id"`
}

// ReleaseLocationRequest entrada para liberar una ubicación. ContainerID es
// opcional; si viene, debe coincidir con el contenedor almacenado.
type ReleaseLocationRequest struct {
	ContainerID *string `json:"container_id"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID                 string    `json:"id"`
	LocationCode       string    `json:"location_code"`
	StackID            string    `json:"stack_id"`
	YardID             string    `json:"yard_id"`
	RowNumber          int       `json:"row_number"`
	TierNumber         int       `json:"tier_number"`
	IsVirtual          bool      `json:"is_virtual"`
	VirtualStackPairID *string   `json:"virtual_stack_pair_id,omitempty"`
	IsOccupied         bool      `json:"is_occupied"`
	ContainerID        *string   `json:"container_id,omitempty"`
	ContainerSize      *string   `json:"container_size,omitempty"`
	ClientPoolID       *string   `json:"client_pool_id,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FromLocation convierte la entidad a su representación HTTP.
func FromLocation(l *entity.Location) LocationResponse {
	return LocationResponse{
		ID:                 l.ID,
		LocationCode:       l.LocationCode,
		StackID:            l.StackID,
		YardID:             l.YardID,
		RowNumber:          l.RowNumber,
		TierNumber:         l.TierNumber,
		IsVirtual:          l.IsVirtual,
		VirtualStackPairID: l.VirtualStackPairID,
		IsOccupied:         l.IsOccupied,
		ContainerID:        l.ContainerID,
		ContainerSize:      l.ContainerSize,
		ClientPoolID:       l.ClientPoolID,
		IsActive:           l.IsActive,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

// FromLocations convierte una lista de entidades.
func FromLocations(locs []*entity.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, FromLocation(l))
	}
	return out
}

// AvailabilityRequest filtros de disponibilidad vía query string.
type AvailabilityRequest struct {
	ContainerSize *string `query:"container_size" validate:"omitempty,oneof=20ft 40ft"`
	ClientPoolID  *string `query:"client_pool_id"`
	StackID       *string `query:"stack_id"`
	Limit         int     `query:"limit" validate:"min=0,max=500"`
}

// BulkAssignItemRequest una asignación dentro de un lote.
type BulkAssignItemRequest struct {
	LocationID    string  `json:"location_id" validate:"required"`
	ContainerID   string  `json:"container_id" validate:"required"`
	ContainerSize string  `json:"container_size" validate:"required,oneof=20ft 40ft"`
	ClientPoolID  *string `json:"client_pool_id"`
}

// BulkAssignRequest lote de asignaciones.
type BulkAssignRequest struct {
	Items []BulkAssignItemRequest `json:"items" validate:"required,min=1,max=500"`
}

// BulkReleaseItemRequest una liberación dentro de un lote.
type BulkReleaseItemRequest struct {
	LocationID  string  `json:"location_id" validate:"required"`
	ContainerID *string `json:"container_id"`
}

// BulkReleaseRequest lote de liberaciones.
type BulkReleaseRequest struct {
	Items []BulkReleaseItemRequest `json:"items" validate:"required,min=1,max=500"`
}

// BulkResultResponse resultado por ítem de una operación en lote.
type BulkResultResponse struct {
	LocationID string            `json:"location_id"`
	OK         bool              `json:"ok"`
	Code       string            `json:"code,omitempty"`
	Message    string            `json:"message,omitempty"`
	Location   *LocationResponse `json:"location,omitempty"`
}

// BulkResponse resultado de un lote completo.
type BulkResponse struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	Results   []BulkResultResponse `json:"results"`
}

// AvailabilitySummaryResponse conteos de disponibilidad de un patio.
type AvailabilitySummaryResponse struct {
	YardID            string `json:"yard_id"`
	TotalActive       int    `json:"total_active"`
	TotalOccupied     int    `json:"total_occupied"`
	TotalAvailable    int    `json:"total_available"`
	AvailableBy20     int    `json:"available_20ft"`
	AvailableBy40     int    `json:"available_40ft"`
	AvailableUnsized  int    `json:"available_unsized"`
	PooledAvailable   int    `json:"pooled_available"`
	UnpooledAvailable int    `json:"unpooled_available"`
}

// YardStatisticsResponse ocupación agregada de un patio.
type YardStatisticsResponse struct {
	YardID           string `json:"yard_id"`
	TotalLocations   int    `json:"total_locations"`
	ActiveLocations  int    `json:"active_locations"`
	OccupiedCount    int    `json:"occupied_count"`
	VirtualCount     int    `json:"virtual_count"`
	OccupancyPercent string `json:"occupancy_percent"`
}

// StackStatisticsResponse ocupación agregada de una pila.
type StackStatisticsResponse struct {
	YardID           string `json:"yard_id"`
	StackID          string `json:"stack_id"`
	StackNumber      int    `json:"stack_number"`
	TotalLocations   int    `json:"total_locations"`
	OccupiedCount    int    `json:"occupied_count"`
	OccupancyPercent string `json:"occupancy_percent"`
}
