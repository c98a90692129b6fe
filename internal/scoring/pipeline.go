// Package scoring implementa el pipeline de scoring de personalidad:
// agrupado de respuestas, estandarización contra normas poblacionales,
// percentiles, intervalos de confianza, clasificación de arquetipo y fusión
// con evidencia conductual. Todo el paquete es puro y sincrónico: sin I/O,
// sin estado mutable compartido; la data de referencia entra por parámetro.
package scoring

import (
	"errors"
	"fmt"
	"sort"

	"soulsig/internal/domain"
)

// ErrMissingReferenceData señala banco de preguntas o tabla de normas
// ausentes. Es el único error duro del pipeline: sin referencia no hay score
// interpretable, así que el motor se niega a computar en vez de defaultear.
var ErrMissingReferenceData = errors.New("scoring: missing reference data")

// Norma por defecto en espacio estandarizado para modo linear-rescale: el
// rango 0..100 cubre ±2.5 desvíos.
var linearNorm = domain.NormEntry{Mean: 50, StdDev: 20}

// Score corre el pipeline completo sobre un set de respuestas: agrupado →
// estandarización → percentil y confianza → arquetipo. Nunca falla por pocas
// respuestas; devuelve el mejor resultado posible con intervalos ensanchados.
func Score(bank domain.QuestionBank, norms domain.NormTable, responses []domain.QuestionResponse) (domain.ScoringResult, error) {
	if len(bank.Questions) == 0 || len(bank.Axes) == 0 {
		return domain.ScoringResult{}, fmt.Errorf("%w: empty question bank", ErrMissingReferenceData)
	}
	if bank.Mode == domain.ModeTraitNorm {
		for _, a := range bank.Axes {
			if _, ok := norms.Dimension(a.Code); !ok {
				return domain.ScoringResult{}, fmt.Errorf("%w: no norm entry for dimension %q", ErrMissingReferenceData, a.Code)
			}
		}
	}

	agg := AggregateResponses(bank, responses)

	dims := make(map[string]domain.DimensionResult, len(bank.Axes))
	for _, axis := range bank.Axes {
		dims[axis.Code] = scoreDimension(bank, norms, axis.Code, agg.ByDimension[axis.Code])
	}

	result := domain.ScoringResult{
		Scheme:               bank.Scheme,
		Version:              bank.Version,
		Mode:                 bank.Mode,
		Dimensions:           dims,
		TotalAnswered:        agg.Answered,
		SkippedResponses:     agg.Skipped,
		CompletionPercentage: roundTo(float64(agg.Answered)/float64(len(bank.Questions))*100, 1),
	}
	if arch := ClassifyArchetype(dims); !arch.IsUnknown() {
		result.Archetype = &arch
	}
	return result, nil
}

func scoreDimension(bank domain.QuestionBank, norms domain.NormTable, code string, da *DimensionAggregate) domain.DimensionResult {
	var score, z float64
	if bank.Mode == domain.ModeTraitNorm {
		entry, _ := norms.Dimension(code)
		score = TScore(da.Sum, entry)
		z = (score - tScoreMid) / 10
	} else {
		score = LinearScore(da.Sum, da.Count, bank.ScaleMax)
		z = (score - linearNorm.Mean) / linearNorm.StdDev
	}
	percentile := PercentileFromZ(z)

	res := domain.DimensionResult{
		Dimension:  code,
		Raw:        da.Sum,
		Score:      score,
		Percentile: percentile,
		Confidence: Confidence(da.Values, da.TotalItems, bank.ScaleMax),
		Label:      dimensionLabel(bank.Mode, code, score, percentile),
		Answered:   da.Count,
		TotalItems: da.TotalItems,
	}
	if bank.Mode == domain.ModeTraitNorm && len(da.Facets) > 0 {
		res.Facets = facetScores(da, norms)
	}
	return res
}

// facetScores desglosa una dimensión en T-scores por faceta. Solo las facetas
// con norma publicada y al menos una respuesta aparecen en el desglose.
func facetScores(da *DimensionAggregate, norms domain.NormTable) []domain.FacetScore {
	codes := make([]string, 0, len(da.Facets))
	for f := range da.Facets {
		codes = append(codes, f)
	}
	sort.Strings(codes)

	out := make([]domain.FacetScore, 0, len(codes))
	for _, f := range codes {
		fa := da.Facets[f]
		entry, ok := norms.Facet(f)
		if !ok || fa.Count == 0 {
			continue
		}
		t := TScore(fa.Sum, entry)
		out = append(out, domain.FacetScore{
			Facet:      f,
			Raw:        fa.Sum,
			Score:      t,
			Percentile: PercentileFromZ((t - tScoreMid) / 10),
			Answered:   fa.Count,
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// dimensionLabel asigna la etiqueta legible: el polo dominante en modo
// lineal, la banda de percentil en modo de normas.
func dimensionLabel(mode, code string, score float64, percentile int) string {
	if mode == domain.ModeLinearRescale {
		if axis, ok := classifierAxis(code); ok {
			if score >= 50 {
				return axis.PosLabel
			}
			return axis.NegLabel
		}
	}
	return percentileBand(percentile)
}

func percentileBand(p int) string {
	switch {
	case p <= 15:
		return "very low"
	case p <= 30:
		return "low"
	case p < 70:
		return "average"
	case p < 85:
		return "high"
	default:
		return "very high"
	}
}
