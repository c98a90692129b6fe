package domain

import "time"

// Insight es un resumen en lenguaje natural generado por el colaborador LLM
// a partir del perfil. El texto se trata como opaco: se persiste y se sirve,
// no se interpreta.
type Insight struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profile_id"`
	Summary    string    `json:"summary"`
	Highlights []string  `json:"highlights,omitempty"`
	Model      string    `json:"model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
