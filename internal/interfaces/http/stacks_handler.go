package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/application/stacks"
)

// StacksHandler maneja las peticiones HTTP de configuración de pilas.
type StacksHandler struct {
	uc          *stacks.UseCase
	defaultYard string
}

// NewStacksHandler construye el handler. defaultYard se usa cuando la
// petición no trae yard_id.
func NewStacksHandler(uc *stacks.UseCase, defaultYard string) *StacksHandler {
	return &StacksHandler{uc: uc, defaultYard: defaultYard}
}

func (h *StacksHandler) yardID(c *fiber.Ctx) string {
	if v := c.Query("yard_id"); v != "" {
		return v
	}
	return h.defaultYard
}

// ChangeContainerSize godoc
// @Summary      Cambiar el tamaño de contenedor de una pila
// @Description  Al pasar a 40ft, la pila y su pareja cambian juntas en una
//
//	transacción y se materializan las ubicaciones virtuales del
//	puente. Al volver a 20ft solo cambia la pila nombrada; las
//	virtuales ocupadas bloquean el cambio.
//
// @Tags         stacks
// @Accept       json
// @Produce      json
// @Param        stackNumber  path   int                             true  "Número de pila"
// @Param        yard_id      query  string                          false "Patio (por defecto el configurado)"
// @Param        body         body   dto.ChangeContainerSizeRequest  true  "container_size"
// @Success      200  {object}  dto.ChangeSizeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stacks/{stackNumber}/container-size [put]
func (h *StacksHandler) ChangeContainerSize(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("stackNumber"))
	if err != nil {
		return badRequest(c, "VALIDATION", "número de pila inválido")
	}
	var in dto.ChangeContainerSizeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	res, err := h.uc.ChangeContainerSize(c.Context(), h.yardID(c), n, in.ContainerSize)
	if err != nil {
		return writeError(c, err)
	}
	updated := make([]dto.StackResponse, 0, len(res.UpdatedStacks))
	for _, s := range res.UpdatedStacks {
		updated = append(updated, dto.FromStack(s))
	}
	return c.JSON(dto.ChangeSizeResponse{
		UpdatedStacks:      updated,
		VirtualCreated:     res.VirtualCreated,
		VirtualDeactivated: res.VirtualDeactivated,
	})
}

// List godoc
// @Summary      Listar las pilas administrables del patio
// @Tags         stacks
// @Produce      json
// @Param        yard_id  query  string  false  "Patio (por defecto el configurado)"
// @Success      200  {array}   dto.StackResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stacks [get]
func (h *StacksHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListManaged(c.Context(), h.yardID(c))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StackResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromStack(s))
	}
	return c.JSON(out)
}
