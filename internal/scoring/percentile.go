package scoring

import "math"

// Coeficientes de Abramowitz & Stegun 7.1.26 para aproximar erf.
const (
	asA1 = 0.254829592
	asA2 = -0.284496736
	asA3 = 1.421413741
	asA4 = -1.453152027
	asA5 = 1.061405429
	asP  = 0.3275911
)

// normalCDF aproxima la CDF normal estándar con la forma racional de
// Abramowitz & Stegun (error máximo ~1.5e-7). La fórmula se mantiene literal,
// sin sustituirla por una CDF de librería, para conservar paridad de salida.
func normalCDF(z float64) float64 {
	sign := 1.0
	if z < 0 {
		sign = -1.0
	}
	x := math.Abs(z) / math.Sqrt2
	t := 1 / (1 + asP*x)
	y := 1 - (((((asA5*t+asA4)*t+asA3)*t+asA2)*t+asA1)*t)*math.Exp(-x*x)
	return 0.5 * (1 + sign*y)
}

// PercentileFromZ convierte un z-score al percentil entero 0..100.
func PercentileFromZ(z float64) int {
	p := int(math.Round(normalCDF(z) * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}
