package service

import (
	"encoding/json"
	"regexp"
	"strings"
)

// cleanLLMJSONResponse quita fences ```json ... ``` y BOM, dejando el contenido usable.
func cleanLLMJSONResponse(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = strings.TrimPrefix(s, "\uFEFF")

	reStart := regexp.MustCompile("(?is)^\\s*```(?:json)?\\s*")
	reEnd := regexp.MustCompile("(?is)\\s*```\\s*$")
	s = reStart.ReplaceAllString(s, "")
	s = reEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func extractFirstJSONObject(input string) string {
	start := strings.IndexByte(input, '{')
	if start == -1 {
		return ""
	}

	inString := false
	escape := false
	depth := 0

	for i := start; i < len(input); i++ {
		ch := input[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
			if depth < 0 {
				return ""
			}
		}
	}

	return ""
}

// insightPayload es el formato pedido al LLM para un insight.
type insightPayload struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
}

// parseInsightPayload intenta recuperar el JSON pedido de una respuesta de
// LLM. Si no hay JSON usable, el texto limpio completo pasa a ser el summary:
// el contenido generado se trata como opaco, no vale perder un insight por
// formato.
func parseInsightPayload(raw string) insightPayload {
	cleaned := cleanLLMJSONResponse(raw)
	candidate := extractFirstJSONObject(cleaned)
	if candidate != "" {
		var payload insightPayload
		if err := json.Unmarshal([]byte(candidate), &payload); err == nil && strings.TrimSpace(payload.Summary) != "" {
			payload.Summary = strings.TrimSpace(payload.Summary)
			return payload
		}
	}
	return insightPayload{Summary: cleaned}
}
