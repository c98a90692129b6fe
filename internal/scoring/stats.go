package scoring

import "math"

// Mean devuelve el promedio aritmético; 0 para un slice vacío.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationVariance calcula la varianza poblacional (divide por N).
func PopulationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	var acc float64
	for _, v := range values {
		d := v - m
		acc += d * d
	}
	return acc / float64(len(values))
}

// PopulationStdDev es la raíz de la varianza poblacional.
func PopulationStdDev(values []float64) float64 {
	return math.Sqrt(PopulationVariance(values))
}

// CronbachAlpha estima la consistencia interna de un set de ítems sobre la
// matriz respuestas[participante][ítem]: k/(k-1) * (1 - Σvar(ítem)/var(total)).
// Matrices degeneradas (menos de 2 filas o columnas, filas desparejas,
// varianza total 0) devuelven 0. El resultado se clampea a [0,1].
func CronbachAlpha(matrix [][]float64) float64 {
	if len(matrix) < 2 {
		return 0
	}
	k := len(matrix[0])
	if k < 2 {
		return 0
	}
	for _, row := range matrix {
		if len(row) != k {
			return 0
		}
	}

	var itemVarSum float64
	col := make([]float64, len(matrix))
	for j := 0; j < k; j++ {
		for i, row := range matrix {
			col[i] = row[j]
		}
		itemVarSum += PopulationVariance(col)
	}

	totals := make([]float64, len(matrix))
	for i, row := range matrix {
		for _, v := range row {
			totals[i] += v
		}
	}
	totalVar := PopulationVariance(totals)
	if totalVar == 0 {
		return 0
	}

	alpha := (float64(k) / float64(k-1)) * (1 - itemVarSum/totalVar)
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return alpha
}
