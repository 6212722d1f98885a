package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

func TestGroundMatchesExactLine(t *testing.T) {
	engine := NewGroundingEngine(0.6)
	dims := []entity.Dimension{{
		Type:       constants.Diameter,
		Value:      10,
		Unit:       "mm",
		SourceText: "DIAMETER 10mm +/- 0.2",
		Confidence: 0.80,
	}}
	text := "TITLE BLOCK\nDIAMETER 10mm +/- 0.2\nNOTES"

	out := engine.Ground(dims, text)

	require.Len(t, out, 1)
	g := out[0].Grounding
	require.NotNil(t, g)
	assert.True(t, g.Matched)
	require.NotNil(t, g.OCRLine)
	assert.Equal(t, "DIAMETER 10mm +/- 0.2", *g.OCRLine)
	require.NotNil(t, g.LineIndex)
	assert.Equal(t, 1, *g.LineIndex)
	assert.InDelta(t, 1.0, g.Similarity, 1e-9)
	assert.InDelta(t, 0.80, out[0].Confidence, 1e-9) // no penalty
}

func TestGroundPenalizesUnmatched(t *testing.T) {
	engine := NewGroundingEngine(0.6)
	dims := []entity.Dimension{{
		Type:       constants.Length,
		Value:      100,
		Unit:       "mm",
		SourceText: "LENGTH 100mm",
		Confidence: 0.80,
	}}
	text := "completely unrelated drawing text\nnothing to see"

	out := engine.Ground(dims, text)

	require.NotNil(t, out[0].Grounding)
	assert.False(t, out[0].Grounding.Matched)
	assert.InDelta(t, 0.56, out[0].Confidence, 1e-9) // 0.80 * 0.7
}

func TestGroundAmbiguousLineNeverMatches(t *testing.T) {
	// similarity between "DIAMETER 10mm" and "DIAMETER 1Omm" is above
	// 0.9, but the line carries a look-alike beside a digit, and that
	// overrides the similarity score.
	engine := NewGroundingEngine(0.9)
	dims := []entity.Dimension{{
		Type:       constants.Diameter,
		Value:      10,
		Unit:       "mm",
		SourceText: "DIAMETER 10mm",
		Confidence: 0.50,
	}}
	text := "DIAMETER 1Omm"

	out := engine.Ground(dims, text)

	require.NotNil(t, out[0].Grounding)
	assert.False(t, out[0].Grounding.Matched)
	assert.InDelta(t, 0.35, out[0].Confidence, 1e-9) // 0.50 * 0.7
}

func TestGroundTieKeepsFirstLine(t *testing.T) {
	engine := NewGroundingEngine(0.6)
	dims := []entity.Dimension{{
		Type:       constants.Radius,
		Value:      5,
		Unit:       "mm",
		SourceText: "R 5mm",
		Confidence: 0.60,
	}}
	text := "R 5mm\nR 5mm"

	out := engine.Ground(dims, text)

	require.NotNil(t, out[0].Grounding.LineIndex)
	assert.Equal(t, 0, *out[0].Grounding.LineIndex)
}

func TestGroundPenaltyAppliedExactlyOnce(t *testing.T) {
	engine := NewGroundingEngine(0.6)
	dims := []entity.Dimension{{
		Type:       constants.Width,
		Value:      30,
		Unit:       "mm",
		SourceText: "W 30mm",
		Confidence: 0.80,
	}}
	text := "unrelated"

	once := engine.Ground(dims, text)
	twice := engine.Ground(once, text)

	assert.Equal(t, once[0].Confidence, twice[0].Confidence)
	assert.Equal(t, once[0].Grounding, twice[0].Grounding)
}

func TestGroundConfidenceNeverIncreases(t *testing.T) {
	engine := NewGroundingEngine(0.6)
	texts := []string{
		"DIAMETER 10mm +/- 0.2",
		"DIAMETER 1Omm",
		"no match at all",
		"",
	}
	for _, text := range texts {
		dims := []entity.Dimension{{
			Type:       constants.Diameter,
			Value:      10,
			Unit:       "mm",
			SourceText: "DIAMETER 10mm +/- 0.2",
			Confidence: 0.80,
		}}
		out := engine.Ground(dims, text)
		assert.LessOrEqual(t, out[0].Confidence, 0.80, "text=%q", text)
	}
}
