package domain

// QuestionResponse es la respuesta cruda de un usuario a un ítem. Input
// efímero del scoring; el motor no es dueño de su ciclo de vida.
type QuestionResponse struct {
	QuestionID     string `json:"question_id"`
	Value          int    `json:"value"`
	ResponseTimeMs int64  `json:"response_time_ms,omitempty"`
}

// FacetScore es el desglose por faceta dentro de una dimensión.
type FacetScore struct {
	Facet      string  `json:"facet"`
	Raw        float64 `json:"raw"`
	Score      float64 `json:"standardized_score"`
	Percentile int     `json:"percentile"`
	Answered   int     `json:"answered_items"`
}

// DimensionResult es el resultado derivado de una dimensión en una corrida
// de scoring. Inmutable una vez computado.
type DimensionResult struct {
	Dimension  string       `json:"dimension"`
	Raw        float64      `json:"raw"`
	Score      float64      `json:"standardized_score"`
	Percentile int          `json:"percentile"`
	Confidence float64      `json:"confidence_interval"`
	Label      string       `json:"label"`
	Answered   int          `json:"answered_items"`
	TotalItems int          `json:"total_items"`
	Facets     []FacetScore `json:"facets,omitempty"`
}

// ScoringResult es la salida completa del pipeline para un set de respuestas.
type ScoringResult struct {
	Scheme               string                     `json:"scheme"`
	Version              string                     `json:"version"`
	Mode                 string                     `json:"mode"`
	Dimensions           map[string]DimensionResult `json:"dimensions"`
	Archetype            *Archetype                 `json:"archetype,omitempty"`
	TotalAnswered        int                        `json:"total_answered"`
	CompletionPercentage float64                    `json:"completion_percentage"`
	SkippedResponses     int                        `json:"skipped_responses"`
}

// PercentileMap extrae el percentil por dimensión, el formato que consumen
// la fusión conductual y el vector de firma.
func (r ScoringResult) PercentileMap() map[string]int {
	out := make(map[string]int, len(r.Dimensions))
	for code, d := range r.Dimensions {
		out[code] = d.Percentile
	}
	return out
}

// FusionResult es el resultado de mezclar percentiles de cuestionario con
// evidencia conductual. Adjustments registra el delta auditable por dimensión.
type FusionResult struct {
	Scores       map[string]int `json:"scores"`
	Adjustments  map[string]int `json:"adjustments"`
	Weight       float64        `json:"weight"`
	EvidenceUsed int            `json:"evidence_used"`
}
