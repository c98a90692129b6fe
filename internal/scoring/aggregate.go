package scoring

import "soulsig/internal/domain"

// DimensionAggregate acumula las respuestas ajustadas de una dimensión.
type DimensionAggregate struct {
	Dimension  string
	Sum        float64
	Count      int
	Values     []float64
	Facets     map[string]*FacetAggregate
	TotalItems int
}

// FacetAggregate acumula la suma por faceta cuando los ítems la declaran.
type FacetAggregate struct {
	Sum   float64
	Count int
}

// Aggregation es la salida del agrupado: sumas crudas por dimensión más el
// conteo de respuestas descartadas.
type Aggregation struct {
	ByDimension map[string]*DimensionAggregate
	Answered    int
	Skipped     int
}

// AggregateResponses agrupa las respuestas por dimensión aplicando
// reverse-keying (value' = scaleMax + 1 - value). Una respuesta con ítem
// desconocido o valor fuera de 1..scaleMax se descarta y se cuenta, nunca es
// error: la completitud parcial es el caso común. Si un ítem se responde más
// de una vez gana la última. Una dimensión sin respuestas queda en la suma
// del punto medio con count 0, para que la confianza propague incertidumbre
// máxima en vez de fallar.
func AggregateResponses(bank domain.QuestionBank, responses []domain.QuestionResponse) Aggregation {
	byID := make(map[string]domain.Question, len(bank.Questions))
	for _, q := range bank.Questions {
		byID[q.ID] = q
	}

	adjusted := make(map[string]float64, len(responses))
	skipped := 0
	for _, r := range responses {
		q, ok := byID[r.QuestionID]
		if !ok || r.Value < 1 || r.Value > bank.ScaleMax {
			skipped++
			continue
		}
		v := float64(r.Value)
		if q.Reversed {
			v = float64(bank.ScaleMax+1) - v
		}
		adjusted[r.QuestionID] = v
	}

	agg := Aggregation{
		ByDimension: make(map[string]*DimensionAggregate, len(bank.Axes)),
		Answered:    len(adjusted),
		Skipped:     skipped,
	}
	for _, a := range bank.Axes {
		agg.ByDimension[a.Code] = &DimensionAggregate{Dimension: a.Code}
	}

	for _, q := range bank.Questions {
		da, ok := agg.ByDimension[q.Dimension]
		if !ok {
			continue
		}
		da.TotalItems++
		v, answered := adjusted[q.ID]
		if !answered {
			continue
		}
		da.Sum += v
		da.Count++
		da.Values = append(da.Values, v)
		if q.Facet != "" {
			if da.Facets == nil {
				da.Facets = make(map[string]*FacetAggregate)
			}
			fa := da.Facets[q.Facet]
			if fa == nil {
				fa = &FacetAggregate{}
				da.Facets[q.Facet] = fa
			}
			fa.Sum += v
			fa.Count++
		}
	}

	midpoint := float64(1+bank.ScaleMax) / 2
	for _, da := range agg.ByDimension {
		if da.Count == 0 {
			da.Sum = midpoint * float64(da.TotalItems)
		}
	}
	return agg
}
