package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/blueprint-verify/internal/common"
	"github.com/joseph-ayodele/blueprint-verify/internal/llm"
	"github.com/joseph-ayodele/blueprint-verify/internal/llm/openai"
	"github.com/joseph-ayodele/blueprint-verify/internal/llm/openrouter"
	"github.com/joseph-ayodele/blueprint-verify/internal/observability/metrics"
	"github.com/joseph-ayodele/blueprint-verify/internal/ocr"
	"github.com/joseph-ayodele/blueprint-verify/internal/pipeline"
)

func buildExtractor(cfg common.LLMConfig, logger *slog.Logger) (llm.Extractor, error) {
	switch cfg.Backend {
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}, logger), nil
	case "openrouter":
		return openrouter.NewClient(openrouter.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	}
	return nil, fmt.Errorf("unknown LLM backend: %s", cfg.Backend)
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "extract <ocr-text-file>")
		os.Exit(2)
	}
	ocrPath := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	tables, err := common.LoadTables(cfg.Verify.TablesPath)
	if err != nil {
		logger.Error("load tables", "error", err)
		os.Exit(1)
	}

	rawText, err := os.ReadFile(ocrPath)
	if err != nil {
		logger.Error("read ocr text", "path", ocrPath, "error", err)
		os.Exit(1)
	}
	sourceText := ocr.NewPreprocessor(tables).Preprocess(string(rawText))
	fileName := filepath.Base(ocrPath)

	inner, err := buildExtractor(cfg.LLM, logger)
	if err != nil {
		logger.Error("build extractor", "error", err)
		os.Exit(1)
	}
	extractor := llm.NewResilientExtractor(inner, llm.DefaultResilienceConfig(), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	raw, rawJSON, err := extractor.Extract(ctx, llm.ExtractRequest{
		OCRText:      sourceText,
		FilenameHint: fileName,
	})
	if err != nil {
		logger.Error("extraction failed",
			"file_name", fileName, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}

	m := metrics.NewPipelineMetrics("extract-cli")
	proc, err := pipeline.NewProcessor(cfg.Verify, tables, m, logger)
	if err != nil {
		logger.Error("build processor", "error", err)
		os.Exit(1)
	}

	doc, err := proc.Run(ctx, pipeline.Request{
		FileName:   fileName,
		Backend:    cfg.LLM.Backend,
		Raw:        raw,
		RawJSON:    rawJSON,
		SourceText: sourceText,
	})
	if err != nil {
		logger.Error("verification failed", "file_name", fileName, "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
