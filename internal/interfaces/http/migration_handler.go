package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/compat"
	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/application/migration"
	"github.com/jhoicas/Patio-api/internal/infrastructure/pdf"
)

// MigrationHandler expone el avance de la migración de identificadores.
// Solo lectura: los lotes se lanzan con el CLI de migración.
type MigrationHandler struct {
	tracker     *migration.Tracker
	compatUC    *compat.UseCase
	reportPDF   *pdf.MigrationReportGenerator
	defaultYard string
}

// NewMigrationHandler construye el handler.
func NewMigrationHandler(tracker *migration.Tracker, compatUC *compat.UseCase, reportPDF *pdf.MigrationReportGenerator, defaultYard string) *MigrationHandler {
	return &MigrationHandler{tracker: tracker, compatUC: compatUC, reportPDF: reportPDF, defaultYard: defaultYard}
}

// Status godoc
// @Summary      Estado agregado de la migración de identificadores
// @Tags         migration
// @Produce      json
// @Success      200  {object}  dto.MigrationStatusResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compat/migration/status [get]
func (h *MigrationHandler) Status(c *fiber.Ctx) error {
	s, err := h.tracker.Status(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MigrationStatusResponse{
		TotalActiveLocations: s.TotalActiveLocations,
		MappedLocations:      s.MappedLocations,
		UnmigratedLocations:  s.UnmigratedLocations,
		MigratedPercent:      s.MigratedPercent.StringFixed(2),
		BatchesByStatus:      s.BatchesByStatus,
	})
}

// Report godoc
// @Summary      Reporte de un lote de migración
// @Description  Sin batch_id devuelve el lote más reciente. Con format=pdf
//
//	responde el reporte imprimible completo del avance.
//
// @Tags         migration
// @Produce      json
// @Param        batch_id  query  string  false  "Lote puntual (por defecto el más reciente)"
// @Param        format    query  string  false  "pdf para el reporte imprimible"
// @Param        yard_id   query  string  false  "Patio del reporte PDF"
// @Success      200  {object}  dto.MigrationBatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/compat/migration/report [get]
func (h *MigrationHandler) Report(c *fiber.Ctx) error {
	batch, err := h.tracker.Report(c.Context(), queryPtr(c, "batch_id"))
	if err != nil && c.Query("format") != "pdf" {
		return writeError(c, err)
	}

	if c.Query("format") == "pdf" {
		// El PDF es el reporte de avance completo; admite patio sin lotes.
		status, err := h.tracker.Status(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		yardID := c.Query("yard_id")
		if yardID == "" {
			yardID = h.defaultYard
		}
		data := pdf.ReportData{
			YardID:      yardID,
			GeneratedAt: time.Now(),
			Status:      *status,
			LatestBatch: batch,
			Translation: h.compatUC.Stats(),
		}
		bytes, err := h.reportPDF.Generate(c.Context(), data)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="migration-report.pdf"`)
		return c.Send(bytes)
	}

	return c.JSON(dto.FromBatch(batch))
}
