package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/blueprint-verify/internal/common"
)

func TestPreprocessRepairsNoisyDimensionLine(t *testing.T) {
	p := NewPreprocessor(common.DefaultTables())

	got := p.Preprocess("Ø 1O mm ± O.2")
	assert.Equal(t, "DIAMETER 10mm +/- 0.2", got)
}

func TestPreprocessDropsGridRefsAndShortLines(t *testing.T) {
	p := NewPreprocessor(common.DefaultTables())

	raw := "A - 12\r\nMATERIAL: SS304\r\nxx\r\nLENGTH 120 mm"
	got := p.Preprocess(raw)
	assert.Equal(t, "MATERIAL: SS304\nLENGTH 120mm", got)
}

func TestFixNumericNoise(t *testing.T) {
	p := NewPreprocessor(common.DefaultTables())

	tests := []struct {
		in   string
		want string
	}{
		{"1O2", "102"},
		{"1O mm", "10mm"},
		{"O.25", "0.25"},
		{"12 cm", "12cm"},
		{"HOLE", "HOLE"},       // O between letters is untouched
		{"O-RING", "O-RING"},   // leading O without decimal point is untouched
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.FixNumericNoise(tt.in), "in=%q", tt.in)
	}
}

func TestNormalizeCharacters(t *testing.T) {
	p := NewPreprocessor(common.DefaultTables())

	assert.Equal(t, " DIAMETER 12", p.NormalizeCharacters("⌀12"))
	assert.Equal(t, "10 +/- 0.1", p.Preprocess("10±0.1"))
}
