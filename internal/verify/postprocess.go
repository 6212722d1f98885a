package verify

import (
	"fmt"
	"strings"

	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// PostProcessor is the last mutation stage before the schema gate: unit
// normalization, confidence capping, and deduplication of equivalent
// dimensions.
type PostProcessor struct {
	unitSynonyms map[string]string
}

func NewPostProcessor(unitSynonyms map[string]string) *PostProcessor {
	return &PostProcessor{unitSynonyms: unitSynonyms}
}

// NormalizeUnit maps unit spellings onto the canonical set. Unknown units
// pass through unchanged, never dropped or guessed.
func (p *PostProcessor) NormalizeUnit(unit string) string {
	if unit == "" {
		return unit
	}
	if canonical, ok := p.unitSynonyms[strings.ToLower(unit)]; ok {
		return canonical
	}
	return unit
}

// CapConfidence clamps to [0,1] and rounds to 2 decimals. Upstream stages
// already satisfy the range; this is the unconditional final check.
func (p *PostProcessor) CapConfidence(confidence float64) float64 {
	return round2(clamp01(confidence))
}

func (p *PostProcessor) dedupKey(dim entity.Dimension) string {
	return fmt.Sprintf("%s\x00%v\x00%s", dim.Type, dim.Value, p.NormalizeUnit(dim.Unit))
}

// Deduplicate groups by (type, value, normalized unit) and keeps the entry
// with strictly higher confidence per group; ties keep the first seen.
// Output order is the insertion order of each key's first occurrence.
func (p *PostProcessor) Deduplicate(dims []entity.Dimension) []entity.Dimension {
	seen := make(map[string]int, len(dims))
	out := make([]entity.Dimension, 0, len(dims))

	for _, dim := range dims {
		key := p.dedupKey(dim)
		if idx, ok := seen[key]; ok {
			if dim.Confidence > out[idx].Confidence {
				out[idx] = dim
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, dim)
	}
	return out
}

// Process returns a cleaned copy of the document: every dimension gets its
// unit normalized and confidence capped, then the list is deduplicated; a
// material, if present, gets its confidence capped.
func (p *PostProcessor) Process(doc *entity.Document) *entity.Document {
	out := *doc

	dims := make([]entity.Dimension, len(doc.Specifications.Dimensions))
	for i, dim := range doc.Specifications.Dimensions {
		dim.Unit = p.NormalizeUnit(dim.Unit)
		dim.Confidence = p.CapConfidence(dim.Confidence)
		dims[i] = dim
	}
	out.Specifications.Dimensions = p.Deduplicate(dims)

	if doc.Specifications.Material != nil {
		mat := *doc.Specifications.Material
		mat.Confidence = p.CapConfidence(mat.Confidence)
		out.Specifications.Material = &mat
	}
	return &out
}
