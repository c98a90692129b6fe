package domain

// Archetype es el tipo categórico derivado de umbralizar las dimensiones en
// su punto medio. Función pura de los scores; se recomputa cuando cambian.
type Archetype struct {
	Code                 string         `json:"code"`
	FullCode             string         `json:"full_code,omitempty"`
	Name                 string         `json:"name"`
	Group                string         `json:"group"`
	Color                string         `json:"color,omitempty"`
	Strength             float64        `json:"strength"`
	Variant              string         `json:"variant,omitempty"`
	DimensionPercentages map[string]int `json:"dimension_percentages,omitempty"`
}

// IsUnknown indica si la clasificación cayó en el sentinela Unknown.
func (a Archetype) IsUnknown() bool {
	return a.Code == ""
}
