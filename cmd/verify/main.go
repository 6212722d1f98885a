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
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
	"github.com/joseph-ayodele/blueprint-verify/internal/export"
	"github.com/joseph-ayodele/blueprint-verify/internal/llm"
	"github.com/joseph-ayodele/blueprint-verify/internal/observability/metrics"
	"github.com/joseph-ayodele/blueprint-verify/internal/ocr"
	"github.com/joseph-ayodele/blueprint-verify/internal/pipeline"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 || len(os.Args) > 4 {
		logger.Error("usage", "cmd", "verify <ocr-text-file> <extraction-json-file> [review-xlsx-out]")
		os.Exit(2)
	}
	ocrPath, extractionPath := os.Args[1], os.Args[2]

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
	rawJSON, err := os.ReadFile(extractionPath)
	if err != nil {
		logger.Error("read extraction json", "path", extractionPath, "error", err)
		os.Exit(1)
	}

	var raw llm.RawExtraction
	if err := json.Unmarshal(rawJSON, &raw); err != nil {
		logger.Error("decode extraction json", "path", extractionPath, "error", err)
		os.Exit(1)
	}

	m := metrics.NewPipelineMetrics("verify-cli")
	proc, err := pipeline.NewProcessor(cfg.Verify, tables, m, logger)
	if err != nil {
		logger.Error("build processor", "error", err)
		os.Exit(1)
	}

	sourceText := ocr.NewPreprocessor(tables).Preprocess(string(rawText))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc, err := proc.Run(ctx, pipeline.Request{
		FileName:   filepath.Base(ocrPath),
		Raw:        raw,
		RawJSON:    rawJSON,
		SourceText: sourceText,
	})
	if err != nil {
		logger.Error("verification failed", "error", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if len(os.Args) == 4 {
		reviewPath := os.Args[3]
		svc := export.NewService(logger)
		xlsx, err := svc.ReviewSheetXLSX([]*entity.Document{doc})
		if err != nil {
			logger.Error("build review sheet", "error", err)
			os.Exit(1)
		}
		if err := os.WriteFile(reviewPath, xlsx, 0o644); err != nil {
			logger.Error("write review sheet", "path", reviewPath, "error", err)
			os.Exit(1)
		}
		logger.Info("review sheet written", "path", reviewPath, "bytes", len(xlsx))
	}
}
