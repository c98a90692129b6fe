package domain

import "time"

const (
	PlatformMusic     = "music"
	PlatformCalendar  = "calendar"
	PlatformCode      = "code"
	PlatformSocial    = "social"
	PlatformBiometric = "biometric"
)

// EvidenceItem es una señal conductual observada (no auto-reportada),
// correlacionada con una dimensión de personalidad. La produce un extractor
// de plataforma; la consume el motor de fusión.
type EvidenceItem struct {
	ID          string    `json:"id,omitempty"`
	ProfileID   string    `json:"profile_id,omitempty"`
	Platform    string    `json:"platform"`
	Feature     string    `json:"feature"`
	Dimension   string    `json:"dimension,omitempty"`
	Value       float64   `json:"value"`
	Correlation float64   `json:"correlation,omitempty"`
	Description string    `json:"description,omitempty"`
	ObservedAt  time.Time `json:"observed_at,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Tagged indica si el ítem ya trae dimensión y correlación asignadas.
func (e EvidenceItem) Tagged() bool {
	return e.Dimension != "" && e.Correlation != 0
}
