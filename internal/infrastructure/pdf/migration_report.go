// Package pdf genera el reporte imprimible del avance de migración de
// identificadores de ubicación (para entrega a operaciones y clientes).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Patio + fecha de corte                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AVANCE: ubicaciones activas / mapeadas / pendientes / %     │
//	│  LOTES: en progreso / completados / fallidos                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ÚLTIMO LOTE: totales y estado                               │
//	│  TRADUCCIÓN: solicitudes, aciertos de caché, no traducidas   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Patio-api/internal/application/compat"
	"github.com/jhoicas/Patio-api/internal/application/migration"
	"github.com/jhoicas/Patio-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ReportData insumos del reporte: avance agregado, último lote y contadores
// de la capa de traducción. LatestBatch puede ser nil si nunca corrió un lote.
type ReportData struct {
	YardID      string
	GeneratedAt time.Time
	Status      migration.Status
	LatestBatch *entity.MigrationBatch
	Translation compat.Stats
}

// MigrationReportGenerator genera el reporte de migración usando Maroto v2.
type MigrationReportGenerator struct{}

func NewMigrationReportGenerator() *MigrationReportGenerator {
	return &MigrationReportGenerator{}
}

// Generate produce el PDF y devuelve sus bytes.
func (g *MigrationReportGenerator) Generate(_ context.Context, data ReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Migración de Ubicaciones", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(progressRow(data.Status))
	m.AddRows(batchCountsRow(data.Status))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(latestBatchRows(data.LatestBatch)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(translationRow(data.Translation))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de migración: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data ReportData) core.Row {
	fecha := data.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("MIGRACIÓN DE IDENTIFICADORES DE UBICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("Patio: "+data.YardID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha de corte", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fecha, props.Text{Size: 9, Align: align.Right, Top: 7}),
		),
	)
}

func progressRow(s migration.Status) core.Row {
	metric := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: colorGray, Top: 1,
			}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 7, Color: colorPrimary,
			}),
		)
	}
	return row.New(16).Add(
		metric("Ubicaciones activas", fmt.Sprintf("%d", s.TotalActiveLocations)),
		metric("Mapeadas", fmt.Sprintf("%d", s.MappedLocations)),
		metric("Pendientes", fmt.Sprintf("%d", s.UnmigratedLocations)),
		metric("Avance", s.MigratedPercent.StringFixed(2)+"%"),
	)
}

func batchCountsRow(s migration.Status) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Lotes: %d en progreso   |   %d completados   |   %d fallidos",
				s.BatchesByStatus[entity.BatchInProgress],
				s.BatchesByStatus[entity.BatchCompleted],
				s.BatchesByStatus[entity.BatchFailed],
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		),
	)
}

func latestBatchRows(b *entity.MigrationBatch) []core.Row {
	title := row.New(7).Add(col.New(12).Add(
		text.New("ÚLTIMO LOTE", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
	if b == nil {
		return []core.Row{title, row.New(6).Add(col.New(12).Add(
			text.New("Sin lotes de migración registrados.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}

	statusColor := colorPrimary
	if b.Status == entity.BatchFailed {
		statusColor = colorAlert
	}
	detail := row.New(12).Add(
		col.New(6).Add(
			text.New("Lote: "+b.ID, props.Text{Size: 8, Top: 1}),
			text.New("Inicio: "+b.StartedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Estado: "+b.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: statusColor, Top: 1,
			}),
			text.New(fmt.Sprintf("Registros: %d   OK: %d   Fallidos: %d",
				b.TotalRecords, b.SuccessfulRecords, b.FailedRecords,
			), props.Text{Size: 8, Align: align.Right, Top: 7, Color: colorGray}),
		),
	)
	return []core.Row{title, detail}
}

func translationRow(s compat.Stats) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CAPA DE TRADUCCIÓN DE IDENTIFICADORES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf(
				"Solicitudes: %d (legadas %d, sintéticas %d)   |   Traducidas: %d   No traducidas: %d   |   Caché: %d aciertos, %d fallos",
				s.TotalRequests, s.LegacyRequests, s.SyntheticRequests,
				s.Translated, s.NotTranslated, s.CacheHits, s.CacheMisses,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}
