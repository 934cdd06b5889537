package compat

import (
	"context"

	"github.com/shopspring/decimal"
)

// Tipos de hallazgo del auto-chequeo de compatibilidad.
const (
	IssueError   = "error"
	IssueWarning = "warning"
)

// SampleIssue hallazgo sobre un mapeo muestreado.
type SampleIssue struct {
	Kind          string // IssueError | IssueWarning
	LegacyID      string
	NewLocationID string
	Message       string
}

// CompatibilityReport resultado del auto-chequeo.
type CompatibilityReport struct {
	SamplesChecked int
	Passed         int
	Failed         int
	Issues         []SampleIssue
	Success        bool            // true si ningún mapeo muestreado falló
	SuccessRate    decimal.Decimal // porcentaje de muestras sin error
}

// ValidateCompatibility muestrea mapeos existentes y verifica por cada uno:
// la traducción directa e inversa devuelve los valores esperados, y el
// registro apuntado sigue siendo recuperable. Los problemas se reportan por
// muestra (nunca se lanzan); un registro irrecuperable es advertencia, no
// error: el mapeo de una ubicación eliminada es un registro histórico válido.
func (uc *UseCase) ValidateCompatibility(ctx context.Context, sampleSize int) (*CompatibilityReport, error) {
	if sampleSize <= 0 {
		sampleSize = 50
	}
	samples, err := uc.translator.mappings.List(ctx, sampleSize, 0)
	if err != nil {
		return nil, err
	}

	report := &CompatibilityReport{SamplesChecked: len(samples)}
	for _, m := range samples {
		failed := false

		forward := uc.translator.LegacyToSynthetic(ctx, m.LegacyID)
		if forward == nil || *forward != m.NewLocationID {
			failed = true
			report.Issues = append(report.Issues, SampleIssue{
				Kind: IssueError, LegacyID: m.LegacyID, NewLocationID: m.NewLocationID,
				Message: "la traducción directa no devuelve el id sintético esperado",
			})
		}

		reverse := uc.translator.SyntheticToLegacy(ctx, m.NewLocationID)
		if reverse == nil || *reverse != m.LegacyID {
			failed = true
			report.Issues = append(report.Issues, SampleIssue{
				Kind: IssueError, LegacyID: m.LegacyID, NewLocationID: m.NewLocationID,
				Message: "la traducción inversa no devuelve el id legado esperado",
			})
		}

		loc, err := uc.locations.GetByID(m.NewLocationID)
		if err != nil || loc == nil {
			report.Issues = append(report.Issues, SampleIssue{
				Kind: IssueWarning, LegacyID: m.LegacyID, NewLocationID: m.NewLocationID,
				Message: "el registro mapeado ya no es recuperable (posible ubicación eliminada)",
			})
		}

		if failed {
			report.Failed++
		} else {
			report.Passed++
		}
	}

	report.Success = report.Failed == 0
	if report.SamplesChecked > 0 {
		report.SuccessRate = decimal.NewFromInt(int64(report.Passed)).
			Div(decimal.NewFromInt(int64(report.SamplesChecked))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	} else {
		report.SuccessRate = decimal.NewFromInt(100)
	}
	return report, nil
}
