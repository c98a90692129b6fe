package scoring

import (
	"math"
	"strings"

	"soulsig/internal/domain"
)

// archetypeAxis define un eje del clasificador: letras y etiquetas de cada
// polo, más el alias Big Five legado para sets de resultados antiguos.
type archetypeAxis struct {
	Code          string
	Alias         string
	AliasInverted bool
	PosLetter     string
	PosLabel      string
	NegLetter     string
	NegLabel      string
}

// Ejes primarios en el orden fijo de composición del código.
var archetypeAxes = [4]archetypeAxis{
	{Code: "mind", Alias: "extraversion", PosLetter: "E", PosLabel: "Extraverted", NegLetter: "I", NegLabel: "Introverted"},
	{Code: "energy", Alias: "openness", PosLetter: "N", PosLabel: "Intuitive", NegLetter: "S", NegLabel: "Observant"},
	{Code: "nature", Alias: "agreeableness", PosLetter: "F", PosLabel: "Feeling", NegLetter: "T", NegLabel: "Thinking"},
	{Code: "tactics", Alias: "conscientiousness", PosLetter: "J", PosLabel: "Judging", NegLetter: "P", NegLabel: "Prospecting"},
}

// Eje secundario opcional. El alias neuroticism va invertido: bajo
// neuroticismo cae en el polo Assertive.
var identityAxis = archetypeAxis{
	Code: "identity", Alias: "neuroticism", AliasInverted: true,
	PosLetter: "A", PosLabel: "Assertive", NegLetter: "T", NegLabel: "Turbulent",
}

type archetypeInfo struct {
	Name  string
	Group string
	Color string
}

// Tabla estática de los 16 códigos, agrupados en 4 familias.
var archetypeTable = map[string]archetypeInfo{
	"INTJ": {Name: "Architect", Group: "Analysts", Color: "#88619A"},
	"INTP": {Name: "Logician", Group: "Analysts", Color: "#88619A"},
	"ENTJ": {Name: "Commander", Group: "Analysts", Color: "#88619A"},
	"ENTP": {Name: "Debater", Group: "Analysts", Color: "#88619A"},
	"INFJ": {Name: "Advocate", Group: "Diplomats", Color: "#33A474"},
	"INFP": {Name: "Mediator", Group: "Diplomats", Color: "#33A474"},
	"ENFJ": {Name: "Protagonist", Group: "Diplomats", Color: "#33A474"},
	"ENFP": {Name: "Campaigner", Group: "Diplomats", Color: "#33A474"},
	"ISTJ": {Name: "Logistician", Group: "Sentinels", Color: "#4298B4"},
	"ISFJ": {Name: "Defender", Group: "Sentinels", Color: "#4298B4"},
	"ESTJ": {Name: "Executive", Group: "Sentinels", Color: "#4298B4"},
	"ESFJ": {Name: "Consul", Group: "Sentinels", Color: "#4298B4"},
	"ISTP": {Name: "Virtuoso", Group: "Explorers", Color: "#E4AE3A"},
	"ISFP": {Name: "Adventurer", Group: "Explorers", Color: "#E4AE3A"},
	"ESTP": {Name: "Entrepreneur", Group: "Explorers", Color: "#E4AE3A"},
	"ESFP": {Name: "Entertainer", Group: "Explorers", Color: "#E4AE3A"},
}

// UnknownArchetype es el sentinela para sets de dimensiones incompletos o
// códigos fuera de tabla. Nunca se lanza error por un código desconocido.
var UnknownArchetype = domain.Archetype{Name: "Unknown", Group: "Unknown"}

// ClassifyArchetype umbraliza los cuatro ejes primarios en el punto medio
// (>= 50 elige el polo positivo) y compone el código de cuatro letras.
// Acepta resultados del esquema de ejes o del Big Five legado vía alias.
// strength es la desviación media de la indiferencia, normalizada a 0..100.
// Determinístico: mismos scores, mismo código, sin estado oculto.
func ClassifyArchetype(results map[string]domain.DimensionResult) domain.Archetype {
	var (
		code      strings.Builder
		deviation float64
	)
	percents := make(map[string]int, len(archetypeAxes)+1)

	for _, axis := range archetypeAxes {
		score, ok := axisScore(results, axis)
		if !ok {
			return UnknownArchetype
		}
		if score >= 50 {
			code.WriteString(axis.PosLetter)
		} else {
			code.WriteString(axis.NegLetter)
		}
		deviation += math.Abs(score - 50)
		percents[axis.Code] = int(math.Round(score))
	}

	c := code.String()
	info, ok := archetypeTable[c]
	if !ok {
		return UnknownArchetype
	}

	arch := domain.Archetype{
		Code:                 c,
		FullCode:             c,
		Name:                 info.Name,
		Group:                info.Group,
		Color:                info.Color,
		Strength:             roundTo(deviation/200*100, 1),
		DimensionPercentages: percents,
	}

	if score, ok := axisScore(results, identityAxis); ok {
		if score >= 50 {
			arch.FullCode = c + "-" + identityAxis.PosLetter
			arch.Variant = identityAxis.PosLabel
		} else {
			arch.FullCode = c + "-" + identityAxis.NegLetter
			arch.Variant = identityAxis.NegLabel
		}
		percents[identityAxis.Code] = int(math.Round(score))
	}
	return arch
}

// axisScore resuelve el score de un eje con fallback al alias legado.
func axisScore(results map[string]domain.DimensionResult, axis archetypeAxis) (float64, bool) {
	if r, ok := results[axis.Code]; ok {
		return r.Score, true
	}
	r, ok := results[axis.Alias]
	if !ok {
		return 0, false
	}
	if axis.AliasInverted {
		return 100 - r.Score, true
	}
	return r.Score, true
}

// TraitAxis traduce un rasgo Big Five al eje del clasificador que lo
// representa. inverted indica que el eje corre en sentido contrario al rasgo.
func TraitAxis(trait string) (code string, inverted bool, ok bool) {
	for _, a := range archetypeAxes {
		if a.Alias == trait {
			return a.Code, a.AliasInverted, true
		}
	}
	if identityAxis.Alias == trait {
		return identityAxis.Code, identityAxis.AliasInverted, true
	}
	return "", false, false
}

// classifierAxis busca la definición de un eje por código.
func classifierAxis(code string) (archetypeAxis, bool) {
	for _, a := range archetypeAxes {
		if a.Code == code {
			return a, true
		}
	}
	if code == identityAxis.Code {
		return identityAxis, true
	}
	return archetypeAxis{}, false
}
