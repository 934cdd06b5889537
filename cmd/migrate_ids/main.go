// migrate_ids corre un lote de migración de identificadores legados: recorre
// las ubicaciones activas sin mapeo y registra su id legado derivado
// (LEG-<patio>-<código>) en location_id_mappings.
//
// Uso: go run ./cmd/migrate_ids [-batch N]
// El lote queda registrado en migration_batches; repetir el comando avanza
// sobre las ubicaciones que sigan sin mapeo.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/Patio-api/internal/application/migration"
	"github.com/jhoicas/Patio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Patio-api/pkg/config"
	"github.com/jhoicas/Patio-api/pkg/logger"
)

func main() {
	batchSize := flag.Int("batch", 500, "máximo de ubicaciones a migrar en esta corrida")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	locationRepo := postgres.NewLocationRepository(pool)
	mappingRepo := postgres.NewMappingRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)

	runner := migration.NewRunner(locationRepo, mappingRepo, batchRepo, log)
	batch, err := runner.Run(ctx, *batchSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corrida de migración: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("lote %s: %s (%d registros, %d ok, %d fallidos)\n",
		batch.ID, batch.Status, batch.TotalRecords, batch.SuccessfulRecords, batch.FailedRecords)

	tracker := migration.NewTracker(locationRepo, mappingRepo, batchRepo)
	status, err := tracker.Status(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "estado de migración: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("avance: %d/%d ubicaciones mapeadas (%s%%)\n",
		status.MappedLocations, status.TotalActiveLocations, status.MigratedPercent.StringFixed(2))
}
