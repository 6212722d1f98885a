package llm

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a generic map.
// We pass this to the model as a structured output constraint and also use it locally
// to validate the raw payload before adaptation.
func BuildExtractionJSONSchema() map[string]any {
	dimension := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"value":       map[string]any{"type": []string{"number", "string"}},
			"unit":        map[string]any{"type": "string"},
			"tolerance":   map[string]any{"type": []string{"string", "null"}},
			"source_text": map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"value", "unit", "source_text"},
	}

	material := map[string]any{
		"type":                 []string{"object", "null"},
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"standard":    map[string]any{"type": "string"},
			"source_text": map[string]any{"type": "string"},
		},
		"required": []string{"name"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"dimensions": map[string]any{
				"type":  "array",
				"items": dimension,
			},
			"material": material,
			"manufacturing_notes": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"dimensions"},
	}
}
