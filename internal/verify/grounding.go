package verify

import (
	"regexp"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// groundingPenalty is the multiplier applied to confidence when no source
// line is judged a genuine match.
const groundingPenalty = 0.7

var reNumericAmbiguity = regexp.MustCompile(`\dO|O\d`)

// GroundingEngine links extracted dimensions back to lines of the source
// text. It catches the failure mode scoring alone cannot: a field that
// looks internally consistent but never actually appears in the source.
type GroundingEngine struct {
	similarityThreshold float64
	params              *levenshtein.Params
}

func NewGroundingEngine(similarityThreshold float64) *GroundingEngine {
	if similarityThreshold <= 0 {
		similarityThreshold = 0.6
	}
	return &GroundingEngine{
		similarityThreshold: similarityThreshold,
		params:              levenshtein.NewParams(),
	}
}

// bestMatch scans every line and keeps the strictly highest similarity;
// ties keep the first line encountered. Similarity is case-insensitive
// normalized edit similarity in [0,1].
func (g *GroundingEngine) bestMatch(sourceText string, lines []string) entity.Grounding {
	bestScore := 0.0
	var bestLine *string
	var bestIndex *int

	lowered := strings.ToLower(sourceText)
	for idx, line := range lines {
		score := levenshtein.Similarity(lowered, strings.ToLower(line), g.params)
		if score > bestScore {
			bestScore = score
			l, i := line, idx
			bestLine = &l
			bestIndex = &i
		}
	}

	return entity.Grounding{
		Matched:    bestScore >= g.similarityThreshold,
		OCRLine:    bestLine,
		LineIndex:  bestIndex,
		Similarity: round2(bestScore),
	}
}

// hasNumericAmbiguity reports a letter/digit look-alike adjacent to a real
// digit, e.g. "1O" in "DIAMETER 1Omm". A line exhibiting this is never
// trusted as a numeric match, regardless of similarity.
func hasNumericAmbiguity(text string) bool {
	return reNumericAmbiguity.MatchString(text)
}

// Ground annotates each dimension with its best-line grounding record and
// multiplies confidence by the penalty when unmatched. The penalty is
// applied exactly once per dimension per run: dimensions that already carry
// a grounding record are returned untouched.
func (g *GroundingEngine) Ground(dims []entity.Dimension, sourceText string) []entity.Dimension {
	lines := strings.Split(sourceText, "\n")

	out := make([]entity.Dimension, len(dims))
	for i, dim := range dims {
		if dim.Grounding != nil {
			out[i] = dim
			continue
		}

		result := g.bestMatch(dim.SourceText, lines)

		// an ambiguous numeric match is weak grounding, whatever its score
		if result.OCRLine != nil && hasNumericAmbiguity(*result.OCRLine) {
			result.Matched = false
		}

		dim.Grounding = &result
		if !result.Matched {
			dim.Confidence = round2(dim.Confidence * groundingPenalty)
		}
		out[i] = dim
	}
	return out
}
