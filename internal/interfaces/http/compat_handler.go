package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/application/compat"
	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/domain/repository"
)

// CompatHandler maneja la superficie de compatibilidad con identificadores legados.
type CompatHandler struct {
	uc *compat.UseCase
}

// NewCompatHandler construye el handler.
func NewCompatHandler(uc *compat.UseCase) *CompatHandler {
	return &CompatHandler{uc: uc}
}

// GetLocation godoc
// @Summary      Resolver una ubicación por id legado o sintético
// @Tags         compat
// @Produce      json
// @Param        anyId  path  string  true  "Id legado (LEG-...), sintético (U-...) o código de ubicación"
// @Success      200  {object}  dto.CompatLookupResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compat/locations/{anyId} [get]
func (h *CompatHandler) GetLocation(c *fiber.Ctx) error {
	lookup, err := h.uc.GetLocation(c.Context(), c.Params("anyId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.CompatLookupResponse{
		Location:    dto.FromLocation(lookup.Location),
		IsMigrated:  lookup.IsMigrated,
		ResolvedVia: lookup.ResolvedVia,
	})
}

// Assign godoc
// @Summary      Asignar aceptando id legado o sintético
// @Tags         compat
// @Accept       json
// @Produce      json
// @Param        anyId  path  string                     true  "Id legado o sintético"
// @Param        body   body  dto.AssignLocationRequest  true  "container_id, container_size, client_pool_id opcional"
// @Success      200  {object}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compat/locations/{anyId}/assign [post]
func (h *CompatHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	loc, err := h.uc.Assign(c.Context(), c.Params("anyId"), allocation.AssignInput{
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
// @Summary      Liberar aceptando id legado o sintético
// @Tags         compat
// @Accept       json
// @Produce      json
// @Param        anyId  path  string                      true   "Id legado o sintético"
// @Param        body   body  dto.ReleaseLocationRequest  false  "container_id opcional"
// @Success      200  {object}  dto.LocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compat/locations/{anyId}/release [post]
func (h *CompatHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseLocationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	loc, err := h.uc.Release(c.Context(), c.Params("anyId"), in.ContainerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FromLocation(loc))
}

// Search godoc
// @Summary      Buscar ubicaciones con soporte de id legado
// @Description  Con legacy_id resuelve esa única ubicación; sin él delega en
//
//	el listado de disponibilidad del patio.
//
// @Tags         compat
// @Produce      json
// @Param        legacy_id       query  string  false  "Id legado a resolver"
// @Param        yard_id         query  string  false  "Patio para la búsqueda por disponibilidad"
// @Param        container_size  query  string  false  "20ft o 40ft"
// @Param        client_pool_id  query  string  false  "Pool del cliente"
// @Param        limit           query  int     false  "Máximo de resultados"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compat/search [get]
func (h *CompatHandler) Search(c *fiber.Ctx) error {
	q := compat.SearchQuery{
		LegacyID: queryPtr(c, "legacy_id"),
		YardID:   c.Query("yard_id"),
		Filter: repository.AvailabilityFilter{
			ContainerSize: queryPtr(c, "container_size"),
			ClientPoolID:  queryPtr(c, "client_pool_id"),
			Limit:         c.QueryInt("limit", 0),
		},
	}
	res, err := h.uc.Search(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"locations":     dto.FromLocations(res.Locations),
		"translated_id": res.TranslatedID,
		"total":         len(res.Locations),
	})
}

// BatchTranslate godoc
// @Summary      Traducir un lote de identificadores
// @Description  Acepta ids legados y sintéticos mezclados; los que no
//
//	resuelven se omiten del mapa (resultado parcial, nunca error).
//
// @Tags         compat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchTranslateRequest  true  "ids"
// @Success      200  {object}  dto.BatchTranslateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/compat/translate [post]
func (h *CompatHandler) BatchTranslate(c *fiber.Ctx) error {
	var in dto.BatchTranslateRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	if len(in.IDs) == 0 {
		return badRequest(c, "VALIDATION", "ids no puede estar vacío")
	}
	translations := h.uc.BatchTranslate(c.Context(), in.IDs)
	return c.JSON(dto.BatchTranslateResponse{
		Translations: translations,
		Resolved:     len(translations),
		Requested:    len(in.IDs),
	})
}

// Stats godoc
// @Summary      Contadores de la capa de traducción
// @Tags         compat
// @Produce      json
// @Success      200  {object}  dto.TranslationStatsResponse
// @Router       /api/compat/stats [get]
func (h *CompatHandler) Stats(c *fiber.Ctx) error {
	s := h.uc.Stats()
	return c.JSON(dto.TranslationStatsResponse{
		TotalRequests:     s.TotalRequests,
		LegacyRequests:    s.LegacyRequests,
		SyntheticRequests: s.SyntheticRequests,
		Translated:        s.Translated,
		NotTranslated:     s.NotTranslated,
		CacheHits:         s.CacheHits,
		CacheMisses:       s.CacheMisses,
	})
}

// ResetStats godoc
// @Summary      Reiniciar los contadores de traducción
// @Tags         compat
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/compat/stats/reset [post]
func (h *CompatHandler) ResetStats(c *fiber.Ctx) error {
	h.uc.ResetStats()
	return c.JSON(fiber.Map{"message": "contadores reiniciados"})
}

// WarmupCache godoc
// @Summary      Precargar la caché de traducción desde el almacén de mapeos
// @Tags         compat
// @Produce      json
// @Param        limit  query  int  false  "Máximo de mapeos a cargar"
// @Success      200  {object}  dto.WarmupResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compat/cache/warmup [post]
func (h *CompatHandler) WarmupCache(c *fiber.Ctx) error {
	loaded, err := h.uc.Warmup(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.WarmupResponse{Loaded: loaded})
}

// ClearCache godoc
// @Summary      Vaciar la caché de traducción
// @Tags         compat
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /api/compat/cache/clear [post]
func (h *CompatHandler) ClearCache(c *fiber.Ctx) error {
	h.uc.ClearCache()
	return c.JSON(fiber.Map{"message": "caché de traducción vaciada"})
}

// Validate godoc
// @Summary      Auto-chequeo de compatibilidad sobre mapeos muestreados
// @Tags         compat
// @Produce      json
// @Param        sample_size  query  int  false  "Cantidad de mapeos a muestrear (50 por defecto)"
// @Success      200  {object}  dto.CompatibilityReportResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compat/validate [post]
func (h *CompatHandler) Validate(c *fiber.Ctx) error {
	report, err := h.uc.ValidateCompatibility(c.Context(), c.QueryInt("sample_size", 0))
	if err != nil {
		return writeError(c, err)
	}
	issues := make([]dto.SampleIssueResponse, 0, len(report.Issues))
	for _, i := range report.Issues {
		issues = append(issues, dto.SampleIssueResponse{
			Kind:          i.Kind,
			LegacyID:      i.LegacyID,
			NewLocationID: i.NewLocationID,
			Message:       i.Message,
		})
	}
	return c.JSON(dto.CompatibilityReportResponse{
		SamplesChecked: report.SamplesChecked,
		Passed:         report.Passed,
		Failed:         report.Failed,
		Issues:         issues,
		Success:        report.Success,
		SuccessRate:    report.SuccessRate.StringFixed(2),
	})
}
