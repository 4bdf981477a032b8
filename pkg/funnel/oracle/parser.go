package oracle

import (
	"encoding/json"
	"strings"
)

type rawEntities struct {
	Brand *string `json:"brand"`
	Model *string `json:"model"`
}

// ParseEntities tolerates the three response shapes the underlying service
// produces: a pure JSON object, a JSON object embedded in surrounding prose,
// and an unstructured single-line answer (treated as a bare brand name).
// Structured extraction is attempted first; the single-line heuristic only
// runs when no JSON-like fragment parses.
func ParseEntities(raw string) Entities {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Entities{}
	}

	// 1. Pure JSON.
	if ents, ok := parseJSON(trimmed); ok {
		return ents
	}

	// 2. JSON fragment inside prose (incl. markdown code fences).
	if start := strings.Index(trimmed, "{"); start != -1 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			if ents, ok := parseJSON(trimmed[start : end+1]); ok {
				return ents
			}
		}
	}

	// 3. Bare single-line answer: take it as the brand name. Multi-line
	// prose or anything essay-sized is discarded as noise.
	if !strings.ContainsAny(trimmed, "\n{}") && len([]rune(trimmed)) <= 64 {
		return Entities{Brand: cleanEntity(trimmed)}
	}

	return Entities{}
}

func parseJSON(s string) (Entities, bool) {
	var raw rawEntities
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Entities{}, false
	}
	var ents Entities
	if raw.Brand != nil {
		ents.Brand = cleanEntity(*raw.Brand)
	}
	if raw.Model != nil {
		ents.Model = cleanEntity(*raw.Model)
	}
	return ents, true
}

func cleanEntity(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'.`)
	if strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
		return ""
	}
	return strings.TrimSpace(s)
}
