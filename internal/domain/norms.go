package domain

// NormEntry es la referencia poblacional de una dimensión o faceta.
type NormEntry struct {
	Mean   float64 `yaml:"mean" json:"mean"`
	StdDev float64 `yaml:"std_dev" json:"std_dev"`
}

// NormTable mapea códigos de dimensión/faceta a sus estadísticos
// poblacionales. Versionada por instrumento; solo lectura.
type NormTable struct {
	Scheme     string               `yaml:"scheme" json:"scheme"`
	Version    string               `yaml:"version" json:"version"`
	Source     string               `yaml:"source,omitempty" json:"source,omitempty"`
	SampleSize int                  `yaml:"sample_size,omitempty" json:"sample_size,omitempty"`
	Dimensions map[string]NormEntry `yaml:"dimensions" json:"dimensions"`
	Facets     map[string]NormEntry `yaml:"facets,omitempty" json:"facets,omitempty"`
}

// Dimension busca la entrada de una dimensión.
func (t NormTable) Dimension(code string) (NormEntry, bool) {
	e, ok := t.Dimensions[code]
	return e, ok
}

// Facet busca la entrada de una faceta.
func (t NormTable) Facet(code string) (NormEntry, bool) {
	e, ok := t.Facets[code]
	return e, ok
}
