package domain

const (
	// Modos de estandarización soportados por el motor de scoring.
	ModeTraitNorm     = "trait-norm"
	ModeLinearRescale = "linear-rescale"
)

const (
	SchemeBigFive = "bigfive"
	SchemeAxis    = "axis"
)

// Question es un ítem inmutable del banco de preguntas. Se carga una vez
// desde los archivos estáticos y nunca se muta.
type Question struct {
	ID        string `yaml:"id" json:"id"`
	Text      string `yaml:"text" json:"text"`
	Dimension string `yaml:"dimension" json:"dimension"`
	Facet     string `yaml:"facet,omitempty" json:"facet,omitempty"`
	Reversed  bool   `yaml:"reversed,omitempty" json:"reversed,omitempty"`
	Order     int    `yaml:"order,omitempty" json:"order,omitempty"`
}

// AxisDef describe una dimensión del esquema (código estable + nombre legible).
type AxisDef struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

// QuestionBank agrupa el instrumento completo de un esquema: ejes, escala
// Likert y preguntas. Es data de referencia, construida al inicio del proceso
// y pasada explícitamente al motor.
type QuestionBank struct {
	Scheme    string     `yaml:"scheme" json:"scheme"`
	Version   string     `yaml:"version" json:"version"`
	Mode      string     `yaml:"mode" json:"mode"`
	ScaleMax  int        `yaml:"scale_max" json:"scale_max"`
	Axes      []AxisDef  `yaml:"axes" json:"axes"`
	Questions []Question `yaml:"questions" json:"questions"`
}

// HasAxis indica si el esquema declara la dimensión dada.
func (b QuestionBank) HasAxis(code string) bool {
	for _, a := range b.Axes {
		if a.Code == code {
			return true
		}
	}
	return false
}

// ItemsPerDimension cuenta los ítems del banco por dimensión.
func (b QuestionBank) ItemsPerDimension() map[string]int {
	counts := make(map[string]int, len(b.Axes))
	for _, q := range b.Questions {
		counts[q.Dimension]++
	}
	return counts
}
