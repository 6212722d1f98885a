package llm

import (
	"log/slog"

	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// Adapter turns a raw model payload into a provisional document: source
// text normalized, dimension types inferred, everything else untouched.
// Candidates with no inferable type are dropped and counted, never emitted
// with a guessed type.
type Adapter struct {
	normalizer *TextNormalizer
	logger     *slog.Logger
}

func NewAdapter(normalizer *TextNormalizer, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{normalizer: normalizer, logger: logger}
}

// Adapt builds the provisional document for fileName. Every dimension comes
// out with confidence 0.0 and no decision; the pipeline stages fill those
// in. Returns the number of candidates dropped by classification.
func (a *Adapter) Adapt(raw RawExtraction, fileName, backend string) (*entity.Document, int) {
	dims := make([]entity.Dimension, 0, len(raw.Dimensions))
	dropped := 0

	for _, cand := range raw.Dimensions {
		source := a.normalizer.Normalize(cand.SourceText)
		dimType, ok := InferDimensionType(source)
		if !ok {
			dropped++
			a.logger.Info("adapter.classification_drop",
				"file_name", fileName,
				"source_text", cand.SourceText,
			)
			continue
		}
		dims = append(dims, entity.Dimension{
			Type:       dimType,
			Value:      cand.Value,
			Unit:       cand.Unit,
			Tolerance:  cand.Tolerance,
			SourceText: source,
			Confidence: 0.0,
		})
	}

	var material *entity.Material
	if raw.Material != nil {
		source := a.normalizer.Normalize(raw.Material.SourceText)
		if source == "" {
			// fall back to the material name as its own evidence
			source = a.normalizer.Normalize(raw.Material.Name)
		}
		material = &entity.Material{
			Name:       raw.Material.Name,
			Standard:   raw.Material.Standard,
			SourceText: source,
			Confidence: 0.0,
		}
	}

	notes := raw.Notes
	if notes == nil {
		notes = []string{}
	}

	doc := &entity.Document{
		Metadata: entity.Metadata{
			FileName:   fileName,
			LLMBackend: backend,
		},
		Specifications: entity.Specifications{
			Dimensions: dims,
			Material:   material,
			Notes:      notes,
		},
	}
	return doc, dropped
}
