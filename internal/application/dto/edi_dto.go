package dto

import "time"

// CodecoRequest datos de un movimiento de contenedor a reportar vía CODECO.
type CodecoRequest struct {
	ContainerNumber    string     `json:"container_number" validate:"required"`
	ContainerSize      string     `json:"container_size" validate:"required,oneof=20ft 40ft"`
	ContainerType      string     `json:"container_type"`
	Customer           string     `json:"customer" validate:"required"`
	Receiver           string     `json:"receiver"`
	BookingReference   string     `json:"booking_reference"`
	EquipmentReference string     `json:"equipment_reference"`
	LocationCode       string     `json:"location_code"`
	OperationTime      *time.Time `json:"operation_time"`
}

// CodecoResponse mensaje EDIFACT generado.
type CodecoResponse struct {
	EDIContent string `json:"edi_content"`
}
