package entity

import "github.com/joseph-ayodele/blueprint-verify/constants"

// Grounding records where (and whether) a dimension's source text was
// located in the OCR text. OCRLine and LineIndex are null when no line
// was scanned at all.
type Grounding struct {
	Matched    bool    `json:"matched"`
	OCRLine    *string `json:"ocr_line"`
	LineIndex  *int    `json:"line_index"`
	Similarity float64 `json:"similarity"`
}

// Dimension is one measured feature extracted from a drawing.
// Confidence starts at 0.0 and only the scorer raises it; grounding may
// lower it and post-processing clamps it. Decision stays empty until the
// policy stage runs.
type Dimension struct {
	Type       constants.DimensionType `json:"type"`
	Value      any                     `json:"value"`
	Unit       string                  `json:"unit"`
	Tolerance  *string                 `json:"tolerance,omitempty"`
	SourceText string                  `json:"source_text"`
	Confidence float64                 `json:"confidence"`
	Decision   constants.Decision      `json:"decision,omitempty"`
	Grounding  *Grounding              `json:"grounding,omitempty"`
}

// Material is scored independently and never grounded.
type Material struct {
	Name       string  `json:"name"`
	Standard   string  `json:"standard"`
	SourceText string  `json:"source_text,omitempty"`
	Confidence float64 `json:"confidence"`
}

type Metadata struct {
	FileName    string `json:"file_name"`
	ProcessedAt string `json:"processed_at"` // RFC 3339, UTC
	LLMBackend  string `json:"llm_backend,omitempty"`
}

type Specifications struct {
	Dimensions []Dimension `json:"dimensions"`
	Material   *Material   `json:"material"`
	Notes      []string    `json:"notes"`
}

// Document is the annotated output record. Its JSON shape is the wire
// contract validated by the schema gate.
type Document struct {
	Metadata         Metadata                   `json:"metadata"`
	Specifications   Specifications             `json:"specifications"`
	DocumentDecision constants.DocumentDecision `json:"document_decision,omitempty"`
}
