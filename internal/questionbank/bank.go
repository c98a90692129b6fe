// Package questionbank carga los bancos de preguntas y las tablas de normas
// embebidos en el binario. El catálogo se construye una sola vez al arrancar
// el proceso; después es de solo lectura.
package questionbank

import (
	"embed"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"soulsig/internal/domain"
)

//go:embed banks/*.yaml norms/*.yaml
var files embed.FS

// ErrUnknownScheme indica que se pidió un esquema que el catálogo no tiene.
var ErrUnknownScheme = errors.New("questionbank: unknown scheme")

// Catalog agrupa los bancos y sus normas, indexados por esquema.
type Catalog struct {
	banks map[string]domain.QuestionBank
	norms map[string]domain.NormTable
}

// Load parsea todos los archivos embebidos y valida la integridad de cada
// banco. Un banco en modo trait-norm sin tabla de normas completa es un
// error fatal de arranque, no algo que se descubre al puntuar.
func Load() (*Catalog, error) {
	c := &Catalog{
		banks: make(map[string]domain.QuestionBank),
		norms: make(map[string]domain.NormTable),
	}

	bankFiles, err := files.ReadDir("banks")
	if err != nil {
		return nil, fmt.Errorf("questionbank: reading embedded banks: %w", err)
	}
	for _, entry := range bankFiles {
		data, err := files.ReadFile("banks/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("questionbank: reading %s: %w", entry.Name(), err)
		}
		var bank domain.QuestionBank
		if err := yaml.Unmarshal(data, &bank); err != nil {
			return nil, fmt.Errorf("questionbank: parsing %s: %w", entry.Name(), err)
		}
		if err := validateBank(bank); err != nil {
			return nil, fmt.Errorf("questionbank: %s: %w", entry.Name(), err)
		}
		if _, dup := c.banks[bank.Scheme]; dup {
			return nil, fmt.Errorf("questionbank: duplicate scheme %q", bank.Scheme)
		}
		c.banks[bank.Scheme] = bank
	}

	normFiles, err := files.ReadDir("norms")
	if err != nil {
		return nil, fmt.Errorf("questionbank: reading embedded norms: %w", err)
	}
	for _, entry := range normFiles {
		data, err := files.ReadFile("norms/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("questionbank: reading %s: %w", entry.Name(), err)
		}
		var table domain.NormTable
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("questionbank: parsing %s: %w", entry.Name(), err)
		}
		c.norms[table.Scheme] = table
	}

	for scheme, bank := range c.banks {
		if bank.Mode != domain.ModeTraitNorm {
			continue
		}
		table, ok := c.norms[scheme]
		if !ok {
			return nil, fmt.Errorf("questionbank: scheme %q is trait-norm but has no norm table", scheme)
		}
		for _, axis := range bank.Axes {
			if _, ok := table.Dimension(axis.Code); !ok {
				return nil, fmt.Errorf("questionbank: scheme %q has no norm entry for dimension %q", scheme, axis.Code)
			}
		}
	}
	return c, nil
}

// Bank devuelve el banco de preguntas de un esquema.
func (c *Catalog) Bank(scheme string) (domain.QuestionBank, error) {
	bank, ok := c.banks[scheme]
	if !ok {
		return domain.QuestionBank{}, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return bank, nil
}

// Norms devuelve la tabla de normas de un esquema, si existe. Los bancos en
// modo linear-rescale no necesitan una.
func (c *Catalog) Norms(scheme string) (domain.NormTable, bool) {
	table, ok := c.norms[scheme]
	return table, ok
}

// Schemes lista los esquemas cargados en orden estable.
func (c *Catalog) Schemes() []string {
	out := make([]string, 0, len(c.banks))
	for scheme := range c.banks {
		out = append(out, scheme)
	}
	sort.Strings(out)
	return out
}

func validateBank(bank domain.QuestionBank) error {
	if bank.Scheme == "" {
		return errors.New("bank has no scheme")
	}
	if bank.Mode != domain.ModeTraitNorm && bank.Mode != domain.ModeLinearRescale {
		return fmt.Errorf("unknown scoring mode %q", bank.Mode)
	}
	if bank.ScaleMax < 2 {
		return fmt.Errorf("scale_max %d is not a usable response scale", bank.ScaleMax)
	}
	if len(bank.Axes) == 0 {
		return errors.New("bank declares no axes")
	}
	seen := make(map[string]bool, len(bank.Questions))
	for _, q := range bank.Questions {
		if q.ID == "" {
			return errors.New("question with empty id")
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if q.Text == "" {
			return fmt.Errorf("question %q has no text", q.ID)
		}
		if !bank.HasAxis(q.Dimension) {
			return fmt.Errorf("question %q references undeclared dimension %q", q.ID, q.Dimension)
		}
	}
	if len(bank.Questions) == 0 {
		return errors.New("bank has no questions")
	}
	return nil
}
