package llm

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/common"
)

func newTestAdapter() *Adapter {
	normalizer := NewTextNormalizer(common.DefaultTables())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAdapter(normalizer, logger)
}

func TestAdaptDropsUnclassifiableCandidates(t *testing.T) {
	a := newTestAdapter()

	raw := RawExtraction{
		Dimensions: []RawDimension{
			{Value: 10.0, Unit: "mm", SourceText: "DIAMETER 10mm +/- 0.2"},
			{Value: 6.0, Unit: "mm", SourceText: "THREAD M6"},
			{Value: 5.0, Unit: "mm", SourceText: "R 5mm"},
		},
	}

	doc, dropped := a.Adapt(raw, "bracket.png", "openai")

	assert.Equal(t, 1, dropped)
	require.Len(t, doc.Specifications.Dimensions, 2)
	assert.Equal(t, constants.Diameter, doc.Specifications.Dimensions[0].Type)
	assert.Equal(t, constants.Radius, doc.Specifications.Dimensions[1].Type)
}

func TestAdaptStartsAtZeroConfidence(t *testing.T) {
	a := newTestAdapter()

	raw := RawExtraction{
		Dimensions: []RawDimension{
			{Value: "12", Unit: "mm", SourceText: "length 12mm"},
		},
	}

	doc, _ := a.Adapt(raw, "bracket.png", "openai")

	require.Len(t, doc.Specifications.Dimensions, 1)
	dim := doc.Specifications.Dimensions[0]
	assert.Zero(t, dim.Confidence)
	assert.Empty(t, dim.Decision)
	assert.Nil(t, dim.Grounding)
}

func TestAdaptMaterialSourceFallsBackToName(t *testing.T) {
	a := newTestAdapter()

	raw := RawExtraction{
		Material: &RawMaterial{Name: "SS304", Standard: "SS304"},
	}

	doc, dropped := a.Adapt(raw, "bracket.png", "openai")

	assert.Zero(t, dropped)
	require.NotNil(t, doc.Specifications.Material)
	assert.Equal(t, "SS304", doc.Specifications.Material.SourceText)
	assert.Zero(t, doc.Specifications.Material.Confidence)
}

func TestAdaptDefaultsNotesToEmpty(t *testing.T) {
	a := newTestAdapter()

	doc, _ := a.Adapt(RawExtraction{}, "bracket.png", "openai")

	assert.NotNil(t, doc.Specifications.Notes)
	assert.Empty(t, doc.Specifications.Notes)
	assert.Nil(t, doc.Specifications.Material)
	assert.Equal(t, "bracket.png", doc.Metadata.FileName)
	assert.Equal(t, "openai", doc.Metadata.LLMBackend)
}
