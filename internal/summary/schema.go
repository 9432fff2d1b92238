package summary

import (
	"familyweather/internal/dayparts"
	"familyweather/internal/icons"
)

// responseSchema builds the Gemini responseSchema for a Card array. The
// icon enum is drawn from the shared vocabulary so the generation constraint
// and the rendering map can never drift apart. Array arity (exactly 3) and
// low <= high are not expressible here and are enforced by post-validation.
func responseSchema() map[string]any {
	parts := make([]string, len(dayparts.All))
	for i, p := range dayparts.All {
		parts[i] = string(p)
	}

	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				"label": map[string]any{
					"type": "STRING",
					"enum": parts,
				},
				"range": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"low":  map[string]any{"type": "NUMBER"},
						"high": map[string]any{"type": "NUMBER"},
					},
					"required": []string{"low", "high"},
				},
				"icon": map[string]any{
					"type": "ARRAY",
					"items": map[string]any{
						"type": "STRING",
						"enum": icons.Vocabulary(),
					},
					"minItems": icons.MinPerCard,
					"maxItems": icons.MaxPerCard,
				},
				"warning": map[string]any{
					"type":  "ARRAY",
					"items": map[string]any{"type": "STRING"},
				},
			},
			"required": []string{"label", "range", "icon", "warning"},
		},
	}
}
