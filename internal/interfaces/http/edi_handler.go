package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/infrastructure/edi"
)

// EDIHandler genera mensajes CODECO para los clientes del patio.
type EDIHandler struct {
	generator *edi.Generator
}

// NewEDIHandler construye el handler.
func NewEDIHandler(generator *edi.Generator) *EDIHandler {
	return &EDIHandler{generator: generator}
}

// GenerateCodeco godoc
// @Summary      Generar un mensaje EDIFACT CODECO de movimiento de contenedor
// @Tags         edi
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CodecoRequest  true  "Datos del movimiento"
// @Success      200   {object}  dto.CodecoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/edi/codeco [post]
func (h *EDIHandler) GenerateCodeco(c *fiber.Ctx) error {
	var in dto.CodecoRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	var opTime time.Time
	if in.OperationTime != nil {
		opTime = *in.OperationTime
	}
	content, err := h.generator.Generate(edi.Movement{
		ContainerNumber:    in.ContainerNumber,
		ContainerSize:      in.ContainerSize,
		ContainerType:      in.ContainerType,
		Customer:           in.Customer,
		Receiver:           in.Receiver,
		BookingReference:   in.BookingReference,
		EquipmentReference: in.EquipmentReference,
		LocationCode:       in.LocationCode,
		OperationTime:      opTime,
	})
	if err != nil {
		return badRequest(c, "VALIDATION", err.Error())
	}
	return c.JSON(dto.CodecoResponse{EDIContent: content})
}
