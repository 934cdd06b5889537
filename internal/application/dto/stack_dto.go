package dto

import (
	"time"

	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// ChangeContainerSizeRequest entrada para cambiar el tamaño de una pila.
type ChangeContainerSizeRequest struct {
	ContainerSize string `json:"container_size" validate:"required,oneof=20ft 40ft"`
}

// ChangeSizeResponse resultado de un cambio de tamaño.
type ChangeSizeResponse struct {
	UpdatedStacks      []StackResponse `json:"updated_stacks"`
	VirtualCreated     int             `json:"virtual_created"`
	VirtualDeactivated int             `json:"virtual_deactivated"`
}

// StackResponse salida de una pila.
type StackResponse struct {
	ID                 string    `json:"id"`
	StackNumber        int       `json:"stack_number"`
	SectionID          string    `json:"section_id"`
	YardID             string    `json:"yard_id"`
	ContainerSize      string    `json:"container_size"`
	IsSpecialStack     bool      `json:"is_special_stack"`
	Capacity           int       `json:"capacity"`
	CurrentOccupancy   int       `json:"current_occupancy"`
	AssignedClientCode string    `json:"assigned_client_code,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FromStack convierte la entidad a su representación HTTP.
func FromStack(s *entity.Stack) StackResponse {
	return StackResponse{
		ID:                 s.ID,
		StackNumber:        s.StackNumber,
		SectionID:          s.SectionID,
		YardID:             s.YardID,
		ContainerSize:      s.ContainerSize,
		IsSpecialStack:     s.IsSpecialStack,
		Capacity:           s.Capacity,
		CurrentOccupancy:   s.CurrentOccupancy,
		AssignedClientCode: s.AssignedClientCode,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
