package llm

import "context"

// RawDimension is one dimension candidate exactly as the model produced it:
// untrusted, untyped, unverified.
type RawDimension struct {
	Value      any     `json:"value"`
	Unit       string  `json:"unit"`
	Tolerance  *string `json:"tolerance,omitempty"`
	SourceText string  `json:"source_text"`
}

type RawMaterial struct {
	Name       string `json:"name"`
	Standard   string `json:"standard"`
	SourceText string `json:"source_text,omitempty"`
}

// RawExtraction is the normalized shape we want from the LLM before any
// verification runs.
type RawExtraction struct {
	Dimensions []RawDimension `json:"dimensions"`
	Material   *RawMaterial   `json:"material,omitempty"`
	Notes      []string       `json:"manufacturing_notes,omitempty"`
}

type ExtractRequest struct {
	OCRText      string
	FilenameHint string
}

// Extractor is the interface the pipeline depends on for the one outward
// call it makes. Implementations handle their own retries; the core never
// retries because none of its operations fail transiently.
type Extractor interface {
	Extract(ctx context.Context, req ExtractRequest) (RawExtraction, []byte /*rawJSON*/, error)
}
