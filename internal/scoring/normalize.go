package scoring

import (
	"math"

	"soulsig/internal/domain"
)

const (
	tScoreMin = 20.0
	tScoreMax = 80.0
	tScoreMid = 50.0
)

// TScore estandariza una suma cruda contra la norma poblacional:
// 50 + 10*(raw-mean)/stdDev, clampeado a [20,80] y redondeado a un decimal.
// Una norma degenerada (stdDev 0) devuelve el punto medio, nunca error.
func TScore(raw float64, norm domain.NormEntry) float64 {
	if norm.StdDev == 0 {
		return tScoreMid
	}
	t := tScoreMid + 10*(raw-norm.Mean)/norm.StdDev
	if t < tScoreMin {
		t = tScoreMin
	}
	if t > tScoreMax {
		t = tScoreMax
	}
	return roundTo(t, 1)
}

// LinearScore reescala el promedio por ítem al rango 0..100:
// (avg-1)/(scaleMax-1)*100. Sin respuestas devuelve el punto medio.
func LinearScore(sum float64, count, scaleMax int) float64 {
	if count == 0 || scaleMax <= 1 {
		return 50
	}
	avg := sum / float64(count)
	return roundTo((avg-1)/float64(scaleMax-1)*100, 1)
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
