package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// AllocationHandler maneja las peticiones HTTP de asignación y disponibilidad.
type AllocationHandler struct {
	uc *allocation.UseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *allocation.UseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar un contenedor a una ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "Id sintético de la ubicación"
// @Param        body  body  dto.AssignLocationRequest  true  "container_id, container_size, client_pool_id opcional"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/assign [post]
func (h *AllocationHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	loc, err := h.uc.Assign(c.Context(), c.Params("id"), allocation.AssignInput{
		ContainerID:   in.ContainerID,
		ContainerSize: in.ContainerSize,
		ClientPoolID:  in.ClientPoolID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// Release godoc
// @Summary      Liberar una ubicación ocupada
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "Id sintético de la ubicación"
// @Param        body  body  dto.ReleaseLocationRequest  false "container_id opcional; si viene, debe coincidir"
// @Success      200   {object}  dto.LocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/release [post]
func (h *AllocationHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseLocationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	loc, err := h.uc.Release(c.Context(), c.Params("id"), in.ContainerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// IsAvailable godoc
// @Summary      Verificar si una ubicación admite una asignación
// @Description  Una violación de regla (ocupada, tamaño, pool) responde
//
//	available=false; solo la inexistencia de la ubicación es error.
//
// @Tags         locations
// @Produce      json
// @Param        id              path   string  true   "Id sintético de la ubicación"
// @Param        container_size  query  string  false  "20ft o 40ft"
// @Param        client_pool_id  query  string  false  "Pool del cliente solicitante"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/availability [get]
func (h *AllocationHandler) IsAvailable(c *fiber.Ctx) error {
	size := queryPtr(c, "container_size")
	pool := queryPtr(c, "client_pool_id")
	ok, err := h.uc.IsAvailable(c.Context(), c.Params("id"), size, pool)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"available": ok})
}

// BulkAssign godoc
// @Summary      Asignar un lote de ubicaciones
// @Description  Procesa cada ítem de forma independiente: el fallo de uno no
//
//	aborta el lote ni revierte los anteriores.
//
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAssignRequest  true  "items"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/bulk-assign [post]
func (h *AllocationHandler) BulkAssign(c *fiber.Ctx) error {
	var in dto.BulkAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "items no puede estar vacío")
	}
	items := make([]allocation.BulkAssignItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, allocation.BulkAssignItem{
			LocationID: it.LocationID,
			Input: allocation.AssignInput{
				ContainerID:   it.ContainerID,
				ContainerSize: it.ContainerSize,
				ClientPoolID:  it.ClientPoolID,
			},
		})
	}
	return c.JSON(toBulkResponse(h.uc.BulkAssign(c.Context(), items)))
}

// BulkRelease godoc
// @Summary      Liberar un lote de ubicaciones
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkReleaseRequest  true  "items"
// @Success      200   {object}  dto.BulkResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations/bulk-release [post]
func (h *AllocationHandler) BulkRelease(c *fiber.Ctx) error {
	var in dto.BulkReleaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.Items) == 0 {
		return badRequest(c, "VALIDATION", "items no puede estar vacío")
	}
	items := make([]allocation.BulkReleaseItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, allocation.BulkReleaseItem{
			LocationID:  it.LocationID,
			ContainerID: it.ContainerID,
		})
	}
	return c.JSON(toBulkResponse(h.uc.BulkRelease(c.Context(), items)))
}

// AvailableLocations godoc
// @Summary      Listar ubicaciones disponibles de un patio
// @Tags         yards
// @Produce      json
// @Param        yardId          path   string  true   "Id del patio"
// @Param        container_size  query  string  false  "20ft o 40ft"
// @Param        client_pool_id  query  string  false  "Con valor: solo ese pool; sin valor: solo sin pool"
// @Param        stack_id        query  string  false  "Limitar a una pila"
// @Param        limit           query  int     false  "Máximo de resultados"
// @Success      200  {array}   dto.LocationResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/yards/{yardId}/available-locations [get]
func (h *AllocationHandler) AvailableLocations(c *fiber.Ctx) error {
	f := repository.AvailabilityFilter{
		ContainerSize: queryPtr(c, "container_size"),
		ClientPoolID:  queryPtr(c, "client_pool_id"),
		StackID:       queryPtr(c, "stack_id"),
		Limit:         c.QueryInt("limit", 0),
	}
	locs, err := h.uc.AvailableLocations(c.Context(), c.Params("yardId"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLocations(locs))
}

// AvailabilitySummary godoc
// @Summary      Resumen de disponibilidad de un patio
// @Tags         yards
// @Produce      json
// @Param        yardId  path  string  true  "Id del patio"
// @Success      200  {object}  dto.AvailabilitySummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/yards/{yardId}/availability-summary [get]
func (h *AllocationHandler) AvailabilitySummary(c *fiber.Ctx) error {
	s, err := h.uc.AvailabilitySummary(c.Context(), c.Params("yardId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.AvailabilitySummaryResponse{
		YardID:            s.YardID,
		TotalActive:       s.TotalActive,
		TotalOccupied:     s.TotalOccupied,
		TotalAvailable:    s.TotalAvailable,
		AvailableBy20:     s.AvailableBy20,
		AvailableBy40:     s.AvailableBy40,
		AvailableUnsized:  s.AvailableUnsized,
		PooledAvailable:   s.PooledAvailable,
		UnpooledAvailable: s.UnpooledAvailable,
	})
}

// YardStatistics godoc
// @Summary      Estadísticas de ocupación de un patio
// @Tags         yards
// @Produce      json
// @Param        yardId  path  string  true  "Id del patio"
// @Success      200  {object}  dto.YardStatisticsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/yards/{yardId}/statistics [get]
func (h *AllocationHandler) YardStatistics(c *fiber.Ctx) error {
	s, err := h.uc.YardStatistics(c.Context(), c.Params("yardId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.YardStatisticsResponse{
		YardID:           s.YardID,
		TotalLocations:   s.TotalLocations,
		ActiveLocations:  s.ActiveLocations,
		OccupiedCount:    s.OccupiedCount,
		VirtualCount:     s.VirtualCount,
		OccupancyPercent: s.OccupancyPercent.StringFixed(2),
	})
}

// StackStatistics godoc
// @Summary      Estadísticas de ocupación de una pila
// @Tags         yards
// @Produce      json
// @Param        yardId       path  string  true  "Id del patio"
// @Param        stackNumber  path  int     true  "Número de pila"
// @Success      200  {object}  dto.StackStatisticsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/yards/{yardId}/stacks/{stackNumber}/statistics [get]
func (h *AllocationHandler) StackStatistics(c *fiber.Ctx) error {
	n, err := strconv.Atoi(c.Params("stackNumber"))
	if err != nil {
		return badRequest(c, "VALIDATION", "número de pila inválido")
	}
	s, err := h.uc.StackStatistics(c.Context(), c.Params("yardId"), n)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StackStatisticsResponse{
		YardID:           s.YardID,
		StackID:          s.StackID,
		StackNumber:      s.StackNumber,
		TotalLocations:   s.TotalLocations,
		OccupiedCount:    s.OccupiedCount,
		OccupancyPercent: s.OccupancyPercent.StringFixed(2),
	})
}

func toBulkResponse(results []allocation.BulkResult) dto.BulkResponse {
	out := dto.BulkResponse{Total: len(results)}
	out.Results = make([]dto.BulkResultResponse, 0, len(results))
	for _, r := range results {
		item := dto.BulkResultResponse{
			LocationID: r.LocationID,
			OK:         r.OK,
			Code:       r.Code,
			Message:    r.Message,
		}
		if r.Location != nil {
			lr := dto.FromLocation(r.Location)
			item.Location = &lr
		}
		if r.OK {
			out.Succeeded++
		} else {
			out.Failed++
		}
		out.Results = append(out.Results, item)
	}
	return out
}

// queryPtr devuelve el query param como puntero, nil si viene vacío.
func queryPtr(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
