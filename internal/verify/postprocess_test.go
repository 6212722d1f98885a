package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/common"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

func newPostProcessor() *PostProcessor {
	return NewPostProcessor(common.DefaultTables().UnitSynonyms)
}

func TestNormalizeUnit(t *testing.T) {
	p := newPostProcessor()

	tests := []struct {
		in   string
		want string
	}{
		{"Millimeters", "mm"},
		{"millimeter", "mm"},
		{"mm", "mm"},
		{"IN", "inch"},
		{"inches", "inch"},
		{"cm", "cm"},
		{"", ""},
		{"furlong", "furlong"}, // unknown passes through unchanged
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.NormalizeUnit(tt.in), "unit=%q", tt.in)
	}
}

func TestCapConfidence(t *testing.T) {
	p := newPostProcessor()

	assert.InDelta(t, 1.0, p.CapConfidence(1.2), 1e-9)
	assert.InDelta(t, 0.0, p.CapConfidence(-0.3), 1e-9)
	assert.InDelta(t, 0.57, p.CapConfidence(0.568), 1e-9)
	assert.InDelta(t, 0.8, p.CapConfidence(0.8), 1e-9)
}

func TestDeduplicateKeepsHighestConfidence(t *testing.T) {
	p := newPostProcessor()

	dims := []entity.Dimension{
		{Type: constants.Diameter, Value: 10, Unit: "mm", Confidence: 0.50, SourceText: "first"},
		{Type: constants.Diameter, Value: 10, Unit: "millimeters", Confidence: 0.90, SourceText: "second"},
		{Type: constants.Radius, Value: 5, Unit: "mm", Confidence: 0.40, SourceText: "third"},
	}

	out := p.Deduplicate(dims)

	require.Len(t, out, 2)
	assert.Equal(t, "second", out[0].SourceText) // higher confidence replaced in place
	assert.Equal(t, "third", out[1].SourceText)
}

func TestDeduplicateTieKeepsFirstSeen(t *testing.T) {
	p := newPostProcessor()

	dims := []entity.Dimension{
		{Type: constants.Length, Value: 100, Unit: "mm", Confidence: 0.60, SourceText: "first"},
		{Type: constants.Length, Value: 100, Unit: "mm", Confidence: 0.60, SourceText: "second"},
	}

	out := p.Deduplicate(dims)

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].SourceText)
}

func TestDeduplicateIdempotent(t *testing.T) {
	p := newPostProcessor()

	dims := []entity.Dimension{
		{Type: constants.Diameter, Value: 10, Unit: "mm", Confidence: 0.50},
		{Type: constants.Diameter, Value: 10, Unit: "mm", Confidence: 0.70},
		{Type: constants.Height, Value: 20, Unit: "cm", Confidence: 0.30},
	}

	once := p.Deduplicate(dims)
	twice := p.Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestProcessDocument(t *testing.T) {
	p := newPostProcessor()

	doc := &entity.Document{
		Metadata: entity.Metadata{FileName: "part.png"},
		Specifications: entity.Specifications{
			Dimensions: []entity.Dimension{
				{Type: constants.Diameter, Value: 10, Unit: "Millimeters", Confidence: 0.804},
				{Type: constants.Diameter, Value: 10, Unit: "mm", Confidence: 0.50},
			},
			Material: &entity.Material{Name: "SS304", Confidence: 1.4},
			Notes:    []string{},
		},
	}

	out := p.Process(doc)

	require.Len(t, out.Specifications.Dimensions, 1)
	dim := out.Specifications.Dimensions[0]
	assert.Equal(t, "mm", dim.Unit)
	assert.InDelta(t, 0.80, dim.Confidence, 1e-9)
	assert.InDelta(t, 1.0, out.Specifications.Material.Confidence, 1e-9)

	// original document untouched
	assert.Equal(t, "Millimeters", doc.Specifications.Dimensions[0].Unit)
	assert.InDelta(t, 1.4, doc.Specifications.Material.Confidence, 1e-9)
}
