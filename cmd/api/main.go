package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Patio-api/internal/application/allocation"
	"github.com/jhoicas/Patio-api/internal/application/compat"
	"github.com/jhoicas/Patio-api/internal/application/migration"
	"github.com/jhoicas/Patio-api/internal/application/stacks"
	infraedi "github.com/jhoicas/Patio-api/internal/infrastructure/edi"
	infrapdf "github.com/jhoicas/Patio-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Patio-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Patio-api/internal/interfaces/http"
	"github.com/jhoicas/Patio-api/pkg/config"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	stackRepo := postgres.NewStackRepository(pool)
	mappingRepo := postgres.NewMappingRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	availabilityCache := allocation.NewCache(cfg.Cache.HotTTL, cfg.Cache.WarmTTL)
	allocationUC := allocation.NewUseCase(locationRepo, availabilityCache, log)
	stacksUC := stacks.NewUseCase(txRunner, stackRepo, availabilityCache, log)

	translator := compat.NewTranslator(mappingRepo, log)
	compatUC := compat.NewUseCase(translator, allocationUC, locationRepo, log)
	tracker := migration.NewTracker(locationRepo, mappingRepo, batchRepo)

	ediGenerator := infraedi.NewGenerator(cfg.EDI.SenderCode, log).
		WithDefaultReceiver(cfg.EDI.DefaultReceiver)
	reportPDF := infrapdf.NewMigrationReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Patio API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AllocationUC: allocationUC,
		StacksUC:     stacksUC,
		CompatUC:     compatUC,
		Tracker:      tracker,
		EDIGenerator: ediGenerator,
		ReportPDF:    reportPDF,
		DefaultYard:  cfg.App.DefaultYardID,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
