package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/blueprint-verify/constants"
	"github.com/joseph-ayodele/blueprint-verify/internal/entity"
)

// Service produces XLSX workbooks listing the dimensions a human must look
// at: everything whose decision is REVIEW_REQUIRED or REJECT.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

func needsAttention(d constants.Decision) bool {
	return d == constants.DecisionReviewRequired || d == constants.DecisionReject
}

// ReviewSheetXLSX returns an XLSX workbook (as bytes) with one row per
// dimension needing review across the given documents.
func (s *Service) ReviewSheetXLSX(docs []*entity.Document) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Review"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	if defIdx, _ := f.GetSheetIndex("Sheet1"); defIdx != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{
		"File",
		"Type",
		"Value",
		"Unit",
		"Tolerance",
		"Source Text",
		"Confidence",
		"Decision",
		"Matched Line",
		"Similarity",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	exported := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		for _, dim := range doc.Specifications.Dimensions {
			if !needsAttention(dim.Decision) {
				continue
			}

			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			write(1, doc.Metadata.FileName)
			write(2, string(dim.Type))
			write(3, fmt.Sprintf("%v", dim.Value))
			write(4, dim.Unit)
			if dim.Tolerance != nil {
				write(5, *dim.Tolerance)
			} else {
				write(5, "")
			}
			write(6, dim.SourceText)
			write(7, dim.Confidence)
			write(8, string(dim.Decision))
			if dim.Grounding != nil {
				if dim.Grounding.OCRLine != nil {
					write(9, *dim.Grounding.OCRLine)
				}
				write(10, dim.Grounding.Similarity)
			}

			row++
			exported++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.review_sheet.ok",
		"documents", len(docs),
		"rows", exported,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
