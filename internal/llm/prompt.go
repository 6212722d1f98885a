package llm

import "strings"

// BuildSystemPrompt composes the system message with strict-but-practical
// formatting rules for blueprint extraction.
func BuildSystemPrompt() string {
	parts := []string{
		"You are a technical-drawing parser. Return ONLY JSON that matches the provided JSON Schema.",
		"Extract every dimension callout you can read: diameters, radii, lengths, widths, heights.",
		"For each dimension, 'source_text' MUST be the exact substring of the input it was read from. Never paraphrase it.",
		"Copy values exactly as printed. Do NOT correct, convert, or impute values or units.",
		"Include tolerance notation (e.g. '+/- 0.2', 'H7') in 'tolerance' only when it is explicitly printed.",
		"If a material specification is visible, report its name and standard code (e.g. ASTM, AISI, ISO, SS).",
		"Put free-text manufacturing instructions into 'manufacturing_notes'.",
		"Never output null for a field that is simply absent. If a field is not present, omit it.",
	}
	return strings.Join(parts, " ")
}

// BuildUserPrompt wraps the OCR text with a filename hint for the model.
func BuildUserPrompt(ocrText, filenameHint string) string {
	var b strings.Builder
	if hint := strings.TrimSpace(filenameHint); hint != "" {
		b.WriteString("File: " + hint + "\n\n")
	}
	b.WriteString("OCR text of the drawing:\n")
	b.WriteString(ocrText)
	return b.String()
}
