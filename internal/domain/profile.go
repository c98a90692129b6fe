package domain

import "time"

// Profile es el perfil de firma de un usuario: el ancla de assessments,
// evidencia, insights y conexiones.
type Profile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Assessment es una corrida de scoring persistida: metadata de la corrida
// más sus DimensionResults.
type Assessment struct {
	ID                   string                     `json:"id"`
	ProfileID            string                     `json:"profile_id"`
	Scheme               string                     `json:"scheme"`
	Version              string                     `json:"version"`
	Mode                 string                     `json:"mode"`
	Dimensions           map[string]DimensionResult `json:"dimensions"`
	Archetype            *Archetype                 `json:"archetype,omitempty"`
	TotalAnswered        int                        `json:"total_answered"`
	CompletionPercentage float64                    `json:"completion_percentage"`
	SkippedResponses     int                        `json:"skipped_responses"`
	CreatedAt            time.Time                  `json:"created_at"`
}

// Result reconstruye el ScoringResult del assessment.
func (a Assessment) Result() ScoringResult {
	return ScoringResult{
		Scheme:               a.Scheme,
		Version:              a.Version,
		Mode:                 a.Mode,
		Dimensions:           a.Dimensions,
		Archetype:            a.Archetype,
		TotalAnswered:        a.TotalAnswered,
		CompletionPercentage: a.CompletionPercentage,
		SkippedResponses:     a.SkippedResponses,
	}
}

// SimilarProfile es un vecino por distancia de firma vectorial.
type SimilarProfile struct {
	ProfileID string  `json:"profile_id"`
	UserID    string  `json:"user_id"`
	Distance  float64 `json:"distance"`
}
