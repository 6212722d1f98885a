package llm

import (
	"strings"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/common"
)

// TextNormalizer canonicalizes OCR/encoding artifacts in extracted source
// text before classification. Pure and total: empty input yields "".
type TextNormalizer struct {
	replacements []common.Replacement
}

func NewTextNormalizer(tables common.Tables) *TextNormalizer {
	return &TextNormalizer{replacements: tables.CharReplacements}
}

func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	for _, r := range n.replacements {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return strings.TrimSpace(text)
}

// InferDimensionType classifies normalized source text into the closed
// dimension-type set. The diameter cue is checked before the positional
// single-letter prefixes so "DIAMETER R5" style ambiguity resolves in
// priority order; first match wins. Returns ok=false when no cue matches;
// callers must drop the candidate, never default it.
func InferDimensionType(sourceText string) (constants.DimensionType, bool) {
	text := strings.ToLower(sourceText)

	switch {
	case strings.Contains(text, "diameter") || strings.Contains(text, "dia "):
		return constants.Diameter, true
	case strings.Contains(text, "radius") || strings.HasPrefix(text, "r "):
		return constants.Radius, true
	case strings.Contains(text, "length") || strings.HasPrefix(text, "l "):
		return constants.Length, true
	case strings.Contains(text, "width") || strings.HasPrefix(text, "w "):
		return constants.Width, true
	case strings.Contains(text, "height") || strings.HasPrefix(text, "h "):
		return constants.Height, true
	}
	return "", false
}
