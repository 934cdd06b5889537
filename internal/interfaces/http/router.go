package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/application/compat"
	"github.com/jhoicas/Patio-api/internal/application/migration"
	"github.com/jhoicas/Patio-api/internal/application/stacks"
	"github.com/jhoicas/Patio-api/internal/infrastructure/edi"
	"github.com/jhoicas/Patio-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AllocationUC *allocation.UseCase
	StacksUC     *stacks.UseCase
	CompatUC     *compat.UseCase
	Tracker      *migration.Tracker
	EDIGenerator *edi.Generator
	ReportPDF    *pdf.MigrationReportGenerator
	DefaultYard  string
}

// Router registra las rutas de la API. Sin autenticación: el control de
// acceso lo hace el colaborador externo que antepone esta API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Asignación y disponibilidad
	allocationHandler := NewAllocationHandler(deps.AllocationUC)
	locations := api.Group("/locations")
	locations.Post("/bulk-assign", allocationHandler.BulkAssign)
	locations.Post("/bulk-release", allocationHandler.BulkRelease)
	locations.Post("/:id/assign", allocationHandler.Assign)
	locations.Post("/:id/release", allocationHandler.Release)
	locations.Get("/:id/availability", allocationHandler.IsAvailable)

	yards := api.Group("/yards")
	yards.Get("/:yardId/available-locations", allocationHandler.AvailableLocations)
	yards.Get("/:yardId/availability-summary", allocationHandler.AvailabilitySummary)
	yards.Get("/:yardId/statistics", allocationHandler.YardStatistics)
	yards.Get("/:yardId/stacks/:stackNumber/statistics", allocationHandler.StackStatistics)

	// Configuración de pilas
	stacksHandler := NewStacksHandler(deps.StacksUC, deps.DefaultYard)
	stacksGroup := api.Group("/stacks")
	stacksGroup.Get("/", stacksHandler.List)
	stacksGroup.Put("/:stackNumber/container-size", stacksHandler.ChangeContainerSize)

	// Compatibilidad con identificadores legados
	compatHandler := NewCompatHandler(deps.CompatUC)
	compatGroup := api.Group("/compat")
	compatGroup.Get("/search", compatHandler.Search)
	compatGroup.Post("/translate", compatHandler.BatchTranslate)
	compatGroup.Get("/stats", compatHandler.Stats)
	compatGroup.Post("/stats/reset", compatHandler.ResetStats)
	compatGroup.Post("/cache/warmup", compatHandler.WarmupCache)
	compatGroup.Post("/cache/clear", compatHandler.ClearCache)
	compatGroup.Post("/validate", compatHandler.Validate)

	migrationHandler := NewMigrationHandler(deps.Tracker, deps.CompatUC, deps.ReportPDF, deps.DefaultYard)
	compatGroup.Get("/migration/status", migrationHandler.Status)
	compatGroup.Get("/migration/report", migrationHandler.Report)

	compatGroup.Get("/locations/:anyId", compatHandler.GetLocation)
	compatGroup.Post("/locations/:anyId/assign", compatHandler.Assign)
	compatGroup.Post("/locations/:anyId/release", compatHandler.Release)

	// Reporte EDI
	ediHandler := NewEDIHandler(deps.EDIGenerator)
	api.Post("/edi/codeco", ediHandler.GenerateCodeco)
}
