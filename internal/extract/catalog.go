// Package extract traduce señales crudas de plataformas conectadas en
// evidencia conductual etiquetada con su dimensión y correlación publicada.
package extract

import (
	"sort"

	"soulsig/internal/domain"
)

// Mapping asocia una feature de plataforma con la dimensión que informa.
// La correlación conserva su signo como documentación; los valores se
// orientan hacia el polo positivo al momento de extraer.
type Mapping struct {
	Dimension   string
	Correlation float64
	Description string
}

var catalog = map[string]map[string]Mapping{
	domain.PlatformMusic: {
		"genre_diversity":   {Dimension: "openness", Correlation: 0.27, Description: "variedad de géneros escuchados en la ventana"},
		"playlist_novelty":  {Dimension: "openness", Correlation: 0.22, Description: "proporción de artistas nuevos sobre el total"},
		"tempo_energy":      {Dimension: "extraversion", Correlation: 0.19, Description: "energía media de las pistas reproducidas"},
		"listening_routine": {Dimension: "conscientiousness", Correlation: 0.14, Description: "regularidad horaria de las sesiones de escucha"},
		"sad_valence_share": {Dimension: "neuroticism", Correlation: 0.21, Description: "proporción de pistas de valencia baja"},
	},
	domain.PlatformCalendar: {
		"meeting_density":    {Dimension: "extraversion", Correlation: 0.24, Description: "horas de reunión sobre horas laborales"},
		"social_event_share": {Dimension: "extraversion", Correlation: 0.18, Description: "proporción de eventos sociales fuera del trabajo"},
		"schedule_rigidity":  {Dimension: "conscientiousness", Correlation: 0.31, Description: "constancia semanal de los bloques agendados"},
		"plan_lead_time":     {Dimension: "conscientiousness", Correlation: 0.26, Description: "anticipación media con la que se crean eventos"},
		"reschedule_rate":    {Dimension: "conscientiousness", Correlation: -0.19, Description: "proporción de eventos movidos o cancelados"},
	},
	domain.PlatformCode: {
		"commit_regularity": {Dimension: "conscientiousness", Correlation: 0.29, Description: "cadencia diaria de commits en la ventana"},
		"review_thoroughness": {
			Dimension: "conscientiousness", Correlation: 0.23,
			Description: "comentarios por revisión frente a la mediana del equipo",
		},
		"new_language_rate": {Dimension: "openness", Correlation: 0.2, Description: "adopción de lenguajes o frameworks nuevos"},
		"issue_collaboration": {
			Dimension: "agreeableness", Correlation: 0.17,
			Description: "participación en discusiones ajenas",
		},
		"late_night_share": {Dimension: "neuroticism", Correlation: 0.12, Description: "proporción de actividad entre medianoche y las 5"},
	},
	domain.PlatformSocial: {
		"post_frequency":     {Dimension: "extraversion", Correlation: 0.25, Description: "publicaciones por semana"},
		"reply_positivity":   {Dimension: "agreeableness", Correlation: 0.22, Description: "tono medio de las respuestas a terceros"},
		"network_breadth":    {Dimension: "extraversion", Correlation: 0.2, Description: "tamaño del grafo de interacción activo"},
		"argument_rate":      {Dimension: "agreeableness", Correlation: -0.24, Description: "proporción de hilos con confrontación"},
		"topic_exploration":  {Dimension: "openness", Correlation: 0.18, Description: "entropía de los temas publicados"},
		"self_focused_share": {Dimension: "neuroticism", Correlation: 0.15, Description: "proporción de publicaciones en primera persona"},
	},
	domain.PlatformBiometric: {
		"sleep_regularity": {Dimension: "conscientiousness", Correlation: 0.21, Description: "estabilidad del horario de sueño"},
		"resting_hr_var":   {Dimension: "neuroticism", Correlation: 0.18, Description: "variabilidad de la frecuencia cardíaca en reposo"},
		"activity_streak":  {Dimension: "conscientiousness", Correlation: 0.19, Description: "días consecutivos cumpliendo la meta de actividad"},
		"recovery_score":   {Dimension: "neuroticism", Correlation: -0.2, Description: "puntaje medio de recuperación nocturna"},
	},
}

// Lookup devuelve el mapping publicado para una feature de plataforma.
func Lookup(platform, feature string) (Mapping, bool) {
	features, ok := catalog[platform]
	if !ok {
		return Mapping{}, false
	}
	m, ok := features[feature]
	return m, ok
}

// Tag completa dimensión, correlación y descripción de un item de evidencia
// cuyo valor ya viene orientado. Devuelve false si la feature no está en el
// catálogo; ese item no puede pesar en una fusión.
func Tag(item *domain.EvidenceItem) bool {
	m, ok := Lookup(item.Platform, item.Feature)
	if !ok {
		return false
	}
	item.Dimension = m.Dimension
	item.Correlation = m.Correlation
	if item.Description == "" {
		item.Description = m.Description
	}
	return true
}

// Platforms lista las plataformas con features catalogadas, en orden estable.
func Platforms() []string {
	out := make([]string, 0, len(catalog))
	for platform := range catalog {
		out = append(out, platform)
	}
	sort.Strings(out)
	return out
}

// Features lista las features catalogadas de una plataforma, en orden estable.
func Features(platform string) []string {
	features, ok := catalog[platform]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(features))
	for feature := range features {
		out = append(out, feature)
	}
	sort.Strings(out)
	return out
}
