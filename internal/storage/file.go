package storage

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"newsquarry/internal/types"
)

// --- XLSX Storage ---

// XLSXStorage buffers rows and writes one workbook on Close.
type XLSXStorage struct {
	path   string
	rows   []*types.NormalizedArticle
	mu     sync.Mutex
	logger *slog.Logger
}

// NewXLSXStorage creates a new XLSX file storage.
func NewXLSXStorage(outputPath string, logger *slog.Logger) (*XLSXStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	return &XLSXStorage{
		path:   outputPath,
		rows:   make([]*types.NormalizedArticle, 0),
		logger: logger.With("component", "xlsx_storage"),
	}, nil
}

func (s *XLSXStorage) Name() string { return "xlsx" }

func (s *XLSXStorage) Store(rows []*types.NormalizedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
	s.logger.Debug("rows buffered", "count", len(rows), "total", len(s.rows))
	return nil
}

func (s *XLSXStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, a := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(a)
		row := make([]any, len(values))
		for j, v := range values {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	s.logger.Info("XLSX written", "path", s.path, "rows", len(s.rows))
	return nil
}

// --- CSV Storage ---

// CSVStorage streams rows to a CSV file.
type CSVStorage struct {
	path   string
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
	count  int
	logger *slog.Logger
}

// NewCSVStorage creates a new CSV file storage.
func NewCSVStorage(outputPath string, logger *slog.Logger) (*CSVStorage, error) {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		f.Close()
		return nil, fmt.Errorf("write CSV header: %w", err)
	}

	return &CSVStorage{
		path:   outputPath,
		file:   f,
		writer: w,
		logger: logger.With("component", "csv_storage"),
	}, nil
}

func (s *CSVStorage) Name() string { return "csv" }

func (s *CSVStorage) Store(rows []*types.NormalizedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range rows {
		if err := s.writer.Write(rowValues(a)); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
		s.count++
	}

	s.writer.Flush()
	return s.writer.Error()
}

func (s *CSVStorage) Close() error {
	s.logger.Info("CSV written", "path", s.path, "rows", s.count)
	if s.writer != nil {
		s.writer.Flush()
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// NewFileStorage creates the appropriate file-based storage by type.
func NewFileStorage(storageType, outputDir string, logger *slog.Logger) (Storage, error) {
	switch storageType {
	case "xlsx":
		return NewXLSXStorage(filepath.Join(outputDir, "results.xlsx"), logger)
	case "csv":
		return NewCSVStorage(filepath.Join(outputDir, "results.csv"), logger)
	default:
		return nil, fmt.Errorf("unsupported file storage type: %s", storageType)
	}
}
