package scoring

import (
	"math"

	"soulsig/internal/domain"
)

// DefaultBehavioralWeight es el peso de mezcla por defecto entre cuestionario
// y evidencia conductual.
const DefaultBehavioralWeight = 0.2

// Fuse mezcla percentiles de cuestionario con evidencia conductual. Para cada
// dimensión con evidencia: behavioral = Σ(value*|corr|)/Σ|corr| y
// combined = q*(1-w) + behavioral*w, redondeado a entero; el delta
// round(behavioral - q) queda registrado como ajuste auditable. Una dimensión
// sin evidencia pasa intacta. Con w = 0 o sin evidencia utilizable devuelve
// el mapa de entrada por identidad, no una copia equivalente: requisito de
// idempotencia de los consumidores.
func Fuse(scores map[string]int, evidence []domain.EvidenceItem, weight float64) domain.FusionResult {
	if weight < 0 {
		weight = 0
	}
	if weight > 1 {
		weight = 1
	}
	identity := domain.FusionResult{Scores: scores, Adjustments: map[string]int{}, Weight: weight}
	if weight == 0 || len(evidence) == 0 {
		return identity
	}

	type acc struct {
		weighted float64
		corr     float64
		items    int
	}
	byDim := make(map[string]*acc)
	for _, item := range evidence {
		c := math.Abs(item.Correlation)
		if item.Dimension == "" || c == 0 {
			continue
		}
		if c > 1 {
			c = 1
		}
		v := item.Value
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		a := byDim[item.Dimension]
		if a == nil {
			a = &acc{}
			byDim[item.Dimension] = a
		}
		a.weighted += v * c
		a.corr += c
		a.items++
	}

	matched := false
	for dim := range scores {
		if a, ok := byDim[dim]; ok && a.corr > 0 {
			matched = true
			break
		}
	}
	if !matched {
		return identity
	}

	fused := make(map[string]int, len(scores))
	adjustments := make(map[string]int)
	used := 0
	for dim, q := range scores {
		a, ok := byDim[dim]
		if !ok || a.corr == 0 {
			fused[dim] = q
			continue
		}
		behavioral := a.weighted / a.corr
		combined := int(math.Round(float64(q)*(1-weight) + behavioral*weight))
		if combined < 0 {
			combined = 0
		}
		if combined > 100 {
			combined = 100
		}
		fused[dim] = combined
		adjustments[dim] = int(math.Round(behavioral - float64(q)))
		used += a.items
	}
	return domain.FusionResult{Scores: fused, Adjustments: adjustments, Weight: weight, EvidenceUsed: used}
}
