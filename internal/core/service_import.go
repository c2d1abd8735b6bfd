package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyFile is returned for imports without a header or without data rows.
var ErrEmptyFile = errors.New("empty file")

// Import reads menu items from a CSV stream and adds every valid row.
//
// The header must name the menu columns (see MenuColumns); matching is
// case-insensitive and a leading BOM is ignored. Rows that fail validation
// are reported in the result and do not stop the import. Nothing is added
// if reading fails or ctx is cancelled before the last row.
func (s *Service) Import(ctx context.Context, fileName string, r io.Reader) (*ImportResult, error) {
	if err := s.imports.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.imports.Release()

	start := time.Now()
	result := &ImportResult{
		ImportID: uuid.NewString(),
		FileName: fileName,
	}

	limited := &LimitedReader{R: r, Max: s.cfg.MaxImportSize}
	cr := csv.NewReader(NewBOMSkippingReader(limited))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, readError(err)
	}

	headerIdx, err := ValidateHeaders(SanitizeRow(header), MenuFieldSpecs)
	if err != nil {
		return nil, err
	}

	type pendingRow struct {
		line int
		data []string
		item MenuItem
	}
	var pending []pendingRow
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("import cancelled: %w", err)
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, readError(err)
		}
		if isEmptyRow(row) {
			continue
		}

		line, _ := cr.FieldPos(0)
		result.TotalRows++

		item, err := ParseItem(RowFields(SanitizeRow(row), headerIdx))
		if err != nil {
			result.FailedRows = append(result.FailedRows, FailedRow{
				LineNumber: line,
				Reason:     err.Error(),
				Data:       row,
			})
			continue
		}
		item.AddedAt = s.now().UTC()
		pending = append(pending, pendingRow{line: line, data: row, item: item})
	}

	if result.TotalRows == 0 {
		return nil, fmt.Errorf("%w: no data rows after header", ErrEmptyFile)
	}

	s.mu.Lock()
	for _, p := range pending {
		if err := s.store.Add(p.item); err != nil {
			result.FailedRows = append(result.FailedRows, FailedRow{
				LineNumber: p.line,
				Reason:     err.Error(),
				Data:       p.data,
			})
			continue
		}
		result.Added++
	}
	s.mu.Unlock()

	result.Duration = time.Since(start)

	logAudit(ctx, s.audit, AuditLogParams{
		Action:       ActionImport,
		ImportID:     result.ImportID,
		RowsAffected: result.Added,
		Reason: fmt.Sprintf("Imported %s: %d added, %d failed",
			fileName, result.Added, len(result.FailedRows)),
	})

	return result, nil
}

// ImportFile imports a CSV file from disk.
func (s *Service) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()

	return s.Import(ctx, filepath.Base(path), f)
}

// ImportDirFiles imports every .csv file in the configured import
// directory, in name order. A file that fails is logged and skipped.
func (s *Service) ImportDirFiles(ctx context.Context) ([]*ImportResult, error) {
	dir := s.cfg.ImportDir
	if dir == "" {
		return nil, errors.New("no file provided: import directory not configured")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read import dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no file provided: no .csv files in %s", dir)
	}
	sort.Strings(names)

	results := make([]*ImportResult, 0, len(names))
	for _, name := range names {
		res, err := s.ImportFile(ctx, filepath.Join(dir, name))
		if err != nil {
			if ctx.Err() != nil {
				return results, err
			}
			slog.Warn("import file failed", "file", name, "error", err)
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

func readError(err error) error {
	if errors.Is(err, ErrFileTooLarge) {
		return err
	}
	return fmt.Errorf("invalid csv: %w", err)
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
