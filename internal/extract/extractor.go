package extract

import (
	"sort"
	"time"

	"soulsig/internal/domain"
)

// Extractor convierte las señales normalizadas de una plataforma (feature →
// valor 0..100) en items de evidencia etiquetados.
type Extractor interface {
	Platform() string
	Extract(profileID string, signals map[string]float64, observedAt time.Time) []domain.EvidenceItem
}

// Registry resuelve el extractor de cada plataforma.
type Registry struct {
	byPlatform map[string]Extractor
}

// NewRegistry indexa los extractores por plataforma. El último gana si hay
// dos para la misma.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byPlatform: make(map[string]Extractor, len(extractors))}
	for _, e := range extractors {
		r.byPlatform[e.Platform()] = e
	}
	return r
}

// DefaultRegistry registra un extractor de catálogo por cada plataforma
// conocida.
func DefaultRegistry() *Registry {
	extractors := make([]Extractor, 0, len(catalog))
	for platform := range catalog {
		extractors = append(extractors, catalogExtractor{platform: platform})
	}
	return NewRegistry(extractors...)
}

// For devuelve el extractor registrado para una plataforma.
func (r *Registry) For(platform string) (Extractor, bool) {
	e, ok := r.byPlatform[platform]
	return e, ok
}

// Platforms lista las plataformas registradas, en orden estable.
func (r *Registry) Platforms() []string {
	out := make([]string, 0, len(r.byPlatform))
	for platform := range r.byPlatform {
		out = append(out, platform)
	}
	sort.Strings(out)
	return out
}

// catalogExtractor etiqueta señales usando el catálogo publicado. Las
// features con correlación negativa invierten su valor para que todo item
// quede orientado al polo positivo de su dimensión.
type catalogExtractor struct {
	platform string
}

func (e catalogExtractor) Platform() string { return e.platform }

func (e catalogExtractor) Extract(profileID string, signals map[string]float64, observedAt time.Time) []domain.EvidenceItem {
	features := make([]string, 0, len(signals))
	for feature := range signals {
		features = append(features, feature)
	}
	sort.Strings(features)

	items := make([]domain.EvidenceItem, 0, len(features))
	for _, feature := range features {
		m, ok := Lookup(e.platform, feature)
		if !ok {
			continue
		}
		value := clamp(signals[feature])
		if m.Correlation < 0 {
			value = 100 - value
		}
		items = append(items, domain.EvidenceItem{
			ProfileID:   profileID,
			Platform:    e.platform,
			Feature:     feature,
			Dimension:   m.Dimension,
			Value:       value,
			Correlation: m.Correlation,
			Description: m.Description,
			ObservedAt:  observedAt,
		})
	}
	return items
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
