package scoring

import "math"

const (
	confidenceMax    = 25.0
	confidenceMin    = 5.0
	confidenceSingle = 20.0
)

// Confidence estima el intervalo de incertidumbre [5,25] de una dimensión:
// desvío poblacional de los valores ajustados como porcentaje del rango de
// escala, penalizado por completitud con sqrt(totalItems/answered). Cero
// respuestas devuelve exactamente 25; una sola, 20. Valores menores indican
// mayor confianza. Es un proxy heurístico, no un intervalo estadístico
// formal: los consumidores dependen de este rango numérico exacto.
func Confidence(values []float64, totalItems, scaleMax int) float64 {
	switch len(values) {
	case 0:
		return confidenceMax
	case 1:
		return confidenceSingle
	}
	if scaleMax <= 1 {
		return confidenceMax
	}
	if totalItems < len(values) {
		totalItems = len(values)
	}

	rangePct := PopulationStdDev(values) / float64(scaleMax-1) * 100
	completion := math.Sqrt(float64(totalItems) / float64(len(values)))
	ci := rangePct * completion
	if ci < confidenceMin {
		ci = confidenceMin
	}
	if ci > confidenceMax {
		ci = confidenceMax
	}
	return roundTo(ci, 1)
}
