package ocr

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueprint-verify/internal/common"
)

var (
	reCRLF          = regexp.MustCompile(`\r\n?`)
	reMultiSpace    = regexp.MustCompile(`\s+`)
	reGridRef       = regexp.MustCompile(`^[A-Z]\s*-\s*\d+$`)
	reOBetweenDigit = regexp.MustCompile(`(\d)O(\d)`)
	reOBeforeUnit   = regexp.MustCompile(`(?i)(\d)O(\s*(?:mm|cm|inch))`)
	reODecimal      = regexp.MustCompile(`\bO\.(\d+)`)
	reNumUnitSpace  = regexp.MustCompile(`(?i)(\d)\s+(mm|cm|inch)`)
)

// Preprocessor reduces OCR noise in raw blueprint text before any semantic
// logic runs. Conservative: it repairs known glyph confusions but never
// guesses values.
type Preprocessor struct {
	tables common.Tables
}

func NewPreprocessor(tables common.Tables) *Preprocessor {
	return &Preprocessor{tables: tables}
}

// NormalizeCharacters rewrites drawing symbols and mojibake sequences into
// their canonical textual forms (Ø -> DIAMETER, ± -> +/-).
func (p *Preprocessor) NormalizeCharacters(text string) string {
	for _, r := range p.tables.CharReplacements {
		text = strings.ReplaceAll(text, r.From, r.To)
	}
	return text
}

// FixNumericNoise repairs letter/digit look-alike confusions where the
// surrounding context makes the reading unambiguous:
//
//	1O2    -> 102
//	1O mm  -> 10mm
//	O.2    -> 0.2
//
// and collapses the space between a number and its unit.
func (p *Preprocessor) FixNumericNoise(text string) string {
	text = reOBetweenDigit.ReplaceAllString(text, "${1}0${2}")
	text = reOBeforeUnit.ReplaceAllString(text, "${1}0${2}")
	text = reODecimal.ReplaceAllString(text, "0.${1}")
	text = reNumUnitSpace.ReplaceAllString(text, "${1}${2}")
	return text
}

// removeNonInformativeLines drops lines too short to carry meaning and
// drawing grid references like "A - 12".
func (p *Preprocessor) removeNonInformativeLines(lines []string) []string {
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if len(stripped) < 3 {
			continue
		}
		if reGridRef.MatchString(stripped) {
			continue
		}
		filtered = append(filtered, stripped)
	}
	return filtered
}

// Preprocess runs the full cleanup: character normalization, numeric noise
// repair, line filtering, and whitespace collapse. The result is the
// newline-delimited source text the verification core grounds against.
func (p *Preprocessor) Preprocess(raw string) string {
	text := reCRLF.ReplaceAllString(raw, "\n")
	text = p.NormalizeCharacters(text)
	text = p.FixNumericNoise(text)

	lines := p.removeNonInformativeLines(strings.Split(text, "\n"))
	for i := range lines {
		lines[i] = strings.TrimSpace(reMultiSpace.ReplaceAllString(lines[i], " "))
	}
	return strings.Join(lines, "\n")
}
