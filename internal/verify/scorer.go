package verify

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

var (
	reCleanNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)
	reTolerance   = regexp.MustCompile(`\+/-|±|H\d+|f\d+`)
	reNoiseGlyph  = regexp.MustCompile(`[OIl]\d|\d[OIl]`)
	reMaterialStd = regexp.MustCompile(`SS\d+|ASTM|AISI|ISO`)
)

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0.0), 1.0)
}

// ConfidenceScorer assigns deterministic [0,1] trust scores to extracted
// fields. The score is a sum of independent signals with no coupling
// between them, so a reviewer can always explain why a value received
// its score.
type ConfidenceScorer struct{}

func NewConfidenceScorer() *ConfidenceScorer {
	return &ConfidenceScorer{}
}

// ScoreDimension scores one dimension against the full source text.
// Signals are order-insensitive and additive:
//
//	clean numeric value            +0.30 (else partially readable +0.10)
//	explicit unit                  +0.20
//	source text seen >=2 / 1 times +0.20 / +0.10
//	tolerance notation present     +0.20
//	look-alike glyph beside digit  -0.10
func (s *ConfidenceScorer) ScoreDimension(dim entity.Dimension, fullSourceText string) float64 {
	score := 0.0

	value := fmt.Sprint(dim.Value)
	if reCleanNumber.MatchString(value) {
		score += 0.30
	} else {
		score += 0.10 // partially readable
	}

	if dim.Unit != "" {
		score += 0.20
	}

	if dim.SourceText != "" {
		switch occurrences := strings.Count(fullSourceText, dim.SourceText); {
		case occurrences >= 2:
			score += 0.20
		case occurrences == 1:
			score += 0.10
		}
	}

	if reTolerance.MatchString(dim.SourceText) {
		score += 0.20
	}

	if reNoiseGlyph.MatchString(dim.SourceText) {
		score -= 0.10
	}

	return round2(clamp01(score))
}

// ScoreMaterial scores a material record from its own evidence only;
// materials are never grounded.
func (s *ConfidenceScorer) ScoreMaterial(mat entity.Material) float64 {
	score := 0.0

	if reMaterialStd.MatchString(mat.SourceText) {
		score += 0.50
	}
	if len(mat.SourceText) > 5 {
		score += 0.20
	}
	if reNoiseGlyph.MatchString(mat.SourceText) {
		score -= 0.10
	}

	return round2(clamp01(score))
}
