package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/joseph-ayodele/blueprint-verify/internal/common"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
	"github.com/joseph-ayodele/blueprint-verify/internal/llm"
	"github.com/joseph-ayodele/blueprint-verify/internal/observability/metrics"
	"github.com/joseph-ayodele/blueprint-verify/internal/verify"
)

// Request is everything the pipeline needs for one document: the raw model
// payload, the unmodified upstream JSON for diagnostics, and the
// preprocessed source text to ground against.
type Request struct {
	FileName   string
	Backend    string
	Raw        llm.RawExtraction
	RawJSON    []byte
	SourceText string
}

// Processor coordinates adaptation, scoring, grounding, policy,
// post-processing, the schema gate, and aggregation for one document at a
// time. Documents are fully independent; batches need no coordination.
type Processor struct {
	logger   *slog.Logger
	adapter  *llm.Adapter
	scorer   *verify.ConfidenceScorer
	grounder *verify.GroundingEngine
	policy   *verify.ConfidencePolicy
	post     *verify.PostProcessor
	gate     *verify.Gate
	metrics  *metrics.PipelineMetrics
	now      func() time.Time
}

func NewProcessor(cfg common.VerifyConfig, tables common.Tables, m *metrics.PipelineMetrics, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	gate, err := verify.NewGate()
	if err != nil {
		return nil, common.WrapError(err, "build schema gate")
	}
	return &Processor{
		logger:   logger,
		adapter:  llm.NewAdapter(llm.NewTextNormalizer(tables), logger),
		scorer:   verify.NewConfidenceScorer(),
		grounder: verify.NewGroundingEngine(cfg.SimilarityThreshold),
		policy:   verify.NewConfidencePolicy(cfg.AcceptThreshold, cfg.ReviewThreshold),
		post:     verify.NewPostProcessor(tables.UnitSynonyms),
		gate:     gate,
		metrics:  m,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// WithClock overrides the timestamp source. Everything else in the pipeline
// is a pure function of its inputs; this keeps processed_at reproducible in
// fixtures too.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// Run verifies one document. Fatal errors (EmptyExtractionError,
// SchemaViolationError) abort this document only and carry the raw
// upstream payload.
func (p *Processor) Run(ctx context.Context, req Request) (*entity.Document, error) {
	start := time.Now()

	doc, dropped := p.adapter.Adapt(req.Raw, req.FileName, req.Backend)
	if p.metrics != nil {
		p.metrics.AddClassificationDrops(dropped)
	}
	if len(doc.Specifications.Dimensions) == 0 {
		p.finish(start, "empty_extraction")
		return nil, &common.EmptyExtractionError{
			FileName: req.FileName,
			Dropped:  dropped,
			Raw:      req.RawJSON,
		}
	}

	// scoring
	dims := doc.Specifications.Dimensions
	for i := range dims {
		dims[i].Confidence = p.scorer.ScoreDimension(dims[i], req.SourceText)
	}
	if doc.Specifications.Material != nil {
		doc.Specifications.Material.Confidence = p.scorer.ScoreMaterial(*doc.Specifications.Material)
	}

	// grounding, then decisions
	dims = p.grounder.Ground(dims, req.SourceText)
	mismatches := 0
	for _, dim := range dims {
		if dim.Grounding != nil && !dim.Grounding.Matched {
			mismatches++
		}
	}
	if p.metrics != nil {
		p.metrics.AddGroundingMismatches(mismatches)
	}
	doc.Specifications.Dimensions = p.policy.Apply(dims)

	doc = p.post.Process(doc)
	doc.Metadata.ProcessedAt = p.now().Format(time.RFC3339)

	if err := p.gate.Validate(doc, req.RawJSON); err != nil {
		if p.metrics != nil {
			p.metrics.IncSchemaViolation()
		}
		p.finish(start, "schema_violation")
		p.logger.Error("pipeline.gate.failed", "file_name", req.FileName, "error", err)
		return nil, err
	}

	doc.DocumentDecision = verify.Aggregate(doc.Specifications.Dimensions)
	p.finish(start, string(doc.DocumentDecision))

	p.logger.Info("pipeline.document.ok",
		"file_name", req.FileName,
		"dimensions", len(doc.Specifications.Dimensions),
		"dropped", dropped,
		"grounding_mismatches", mismatches,
		"document_decision", doc.DocumentDecision,
	)
	return doc, nil
}

// BatchResult pairs one request with its outcome. Err is non-nil only for
// document-scoped fatal conditions.
type BatchResult struct {
	FileName string
	Document *entity.Document
	Err      error
}

// ProcessBatch verifies documents independently: a fatal error aborts only
// its own document, never the batch. Context cancellation stops the walk.
func (p *Processor) ProcessBatch(ctx context.Context, reqs []Request) []BatchResult {
	results := make([]BatchResult, 0, len(reqs))
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			results = append(results, BatchResult{FileName: req.FileName, Err: err})
			continue
		}
		doc, err := p.Run(ctx, req)
		if err != nil {
			p.logger.Error("pipeline.document.failed", "file_name", req.FileName, "error", err)
		}
		results = append(results, BatchResult{FileName: req.FileName, Document: doc, Err: err})
	}
	return results
}

// ProcessBatchParallel fans requests out over n workers. Safe because no
// component reads or writes state outside the document it is given; results
// come back in input order.
func (p *Processor) ProcessBatchParallel(ctx context.Context, reqs []Request, workers int) []BatchResult {
	if workers <= 1 || len(reqs) <= 1 {
		return p.ProcessBatch(ctx, reqs)
	}
	if workers > len(reqs) {
		workers = len(reqs)
	}

	results := make([]BatchResult, len(reqs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := reqs[i]
				if err := ctx.Err(); err != nil {
					results[i] = BatchResult{FileName: req.FileName, Err: err}
					continue
				}
				doc, err := p.Run(ctx, req)
				if err != nil {
					p.logger.Error("pipeline.document.failed", "file_name", req.FileName, "error", err)
				}
				results[i] = BatchResult{FileName: req.FileName, Document: doc, Err: err}
			}
		}()
	}
	for i := range reqs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (p *Processor) finish(start time.Time, outcome string) {
	if p.metrics != nil {
		p.metrics.FinishDocument("blueprint-verify", time.Since(start), outcome)
	}
}
