package verify

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/blueprint-verify/internal/common"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// Gate is the fail-closed structural checkpoint between the pipeline and
// downstream consumers. A document that fails here never reaches the
// decision aggregator and no partial output is returned for it.
type Gate struct {
	schema *jsonschema.Schema
}

func NewGate() (*Gate, error) {
	b, err := json.Marshal(BuildDocumentJSONSchema())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("document_schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("document_schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Gate{schema: schema}, nil
}

// Validate checks the assembled document against the output contract.
// On violation it returns a SchemaViolationError carrying the violation
// detail and the unmodified raw upstream extraction for diagnosis.
func (g *Gate) Validate(doc *entity.Document, rawUpstream []byte) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return &common.SchemaViolationError{
			FileName: doc.Metadata.FileName,
			Detail:   fmt.Errorf("encode document: %w", err),
			Raw:      rawUpstream,
		}
	}
	var v any
	if err := json.Unmarshal(encoded, &v); err != nil {
		return &common.SchemaViolationError{
			FileName: doc.Metadata.FileName,
			Detail:   fmt.Errorf("decode document: %w", err),
			Raw:      rawUpstream,
		}
	}
	if err := g.schema.Validate(v); err != nil {
		return &common.SchemaViolationError{
			FileName: doc.Metadata.FileName,
			Detail:   err,
			Raw:      rawUpstream,
		}
	}
	return nil
}
