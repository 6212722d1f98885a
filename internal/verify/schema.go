package verify

import "github.com/joseph-ayodele/blueprint-verify/constants"

// BuildDocumentJSONSchema returns the output contract as a JSON-Schema
// (draft 2020-12 subset) generic map. The gate runs before aggregation, so
// document_decision is described but not required; per-dimension decision
// and grounding ARE required because every upstream stage has run by then.
func BuildDocumentJSONSchema() map[string]any {
	grounding := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"matched":    map[string]any{"type": "boolean"},
			"ocr_line":   map[string]any{"type": []string{"string", "null"}},
			"line_index": map[string]any{"type": []string{"integer", "null"}},
			"similarity": map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"matched", "ocr_line", "line_index", "similarity"},
	}

	dimension := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"type": map[string]any{
				"type": "string",
				"enum": constants.DimensionTypesAsStrings(),
			},
			"value":       map[string]any{"type": []string{"number", "string"}},
			"unit":        map[string]any{"type": "string"},
			"tolerance":   map[string]any{"type": []string{"string", "null"}},
			"source_text": map[string]any{"type": "string", "minLength": 1},
			"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
			"decision": map[string]any{
				"type": "string",
				"enum": []string{
					string(constants.DecisionAutoAccept),
					string(constants.DecisionReviewRequired),
					string(constants.DecisionReject),
				},
			},
			"grounding": grounding,
		},
		"required": []string{"type", "value", "unit", "source_text", "confidence", "decision", "grounding"},
	}

	material := map[string]any{
		"type":                 []string{"object", "null"},
		"additionalProperties": false,
		"properties": map[string]any{
			"name":        map[string]any{"type": "string"},
			"standard":    map[string]any{"type": "string"},
			"source_text": map[string]any{"type": "string"},
			"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0},
		},
		"required": []string{"name", "confidence"},
	}

	metadata := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"file_name":    map[string]any{"type": "string", "minLength": 1},
			"processed_at": map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`},
			"llm_backend":  map[string]any{"type": "string"},
		},
		"required": []string{"file_name", "processed_at"},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"metadata": metadata,
			"specifications": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"dimensions": map[string]any{"type": "array", "items": dimension},
					"material":   material,
					"notes":      map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"dimensions", "material", "notes"},
			},
			"document_decision": map[string]any{
				"type": "string",
				"enum": []string{
					string(constants.DocumentAutoAccepted),
					string(constants.DocumentReviewRequired),
					string(constants.DocumentRejected),
				},
			},
		},
		"required": []string{"metadata", "specifications"},
	}
}
