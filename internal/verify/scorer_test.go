package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestScoreDimensionAllSignals(t *testing.T) {
	scorer := NewConfidenceScorer()

	dim := entity.Dimension{
		Type:       constants.Diameter,
		Value:      10,
		Unit:       "mm",
		Tolerance:  strPtr("+/- 0.2"),
		SourceText: "DIAMETER 10mm +/- 0.2",
	}
	fullText := "DIAMETER 10mm +/- 0.2"

	// clean number 0.30 + unit 0.20 + one occurrence 0.10 + tolerance 0.20
	score := scorer.ScoreDimension(dim, fullText)
	require.InDelta(t, 0.80, score, 1e-9)
}

func TestScoreDimensionSignalTable(t *testing.T) {
	scorer := NewConfidenceScorer()

	tests := []struct {
		name     string
		dim      entity.Dimension
		fullText string
		want     float64
	}{
		{
			name:     "partially readable value, no unit, no occurrence",
			dim:      entity.Dimension{Value: "1?", SourceText: "LENGTH 1?"},
			fullText: "something else entirely",
			want:     0.10,
		},
		{
			name:     "redundant source text",
			dim:      entity.Dimension{Value: 25, Unit: "mm", SourceText: "W 25mm"},
			fullText: "W 25mm\nW 25mm",
			want:     0.70, // 0.30 + 0.20 + 0.20
		},
		{
			name:     "tolerance code",
			dim:      entity.Dimension{Value: 12, Unit: "mm", SourceText: "DIAMETER 12mm H7"},
			fullText: "DIAMETER 12mm H7",
			want:     0.80,
		},
		{
			name:     "look-alike glyph beside digit",
			dim:      entity.Dimension{Value: 10, Unit: "mm", SourceText: "DIAMETER 1Omm"},
			fullText: "DIAMETER 1Omm",
			want:     0.50, // 0.30 + 0.20 + 0.10 - 0.10
		},
		{
			name:     "empty source text contributes no redundancy",
			dim:      entity.Dimension{Value: 5, Unit: "mm", SourceText: ""},
			fullText: "anything",
			want:     0.50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ScoreDimension(tt.dim, tt.fullText)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreDimensionDeterministic(t *testing.T) {
	scorer := NewConfidenceScorer()
	dim := entity.Dimension{Value: 10, Unit: "mm", SourceText: "DIAMETER 10mm +/- 0.2"}
	fullText := "DIAMETER 10mm +/- 0.2\nR 5mm"

	first := scorer.ScoreDimension(dim, fullText)
	second := scorer.ScoreDimension(dim, fullText)
	require.Equal(t, first, second)
}

func TestScoreDimensionStaysInRange(t *testing.T) {
	scorer := NewConfidenceScorer()

	// every positive signal at once still caps at 1.0
	dim := entity.Dimension{Value: 10, Unit: "mm", SourceText: "DIAMETER 10mm +/- 0.2"}
	fullText := "DIAMETER 10mm +/- 0.2\nDIAMETER 10mm +/- 0.2"
	score := scorer.ScoreDimension(dim, fullText)
	require.GreaterOrEqual(t, score, 0.0)
	require.LessOrEqual(t, score, 1.0)
}

func TestScoreMaterial(t *testing.T) {
	scorer := NewConfidenceScorer()

	tests := []struct {
		name string
		mat  entity.Material
		want float64
	}{
		{
			name: "standard code and long source",
			mat:  entity.Material{Name: "Stainless Steel", Standard: "SS304", SourceText: "MATERIAL SS304"},
			want: 0.70,
		},
		{
			name: "no standard, short source",
			mat:  entity.Material{Name: "Steel", SourceText: "steel"},
			want: 0.00,
		},
		{
			name: "astm standard",
			mat:  entity.Material{Name: "Carbon Steel", Standard: "ASTM A36", SourceText: "ASTM A36 steel"},
			want: 0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, scorer.ScoreMaterial(tt.mat), 1e-9)
		})
	}
}
