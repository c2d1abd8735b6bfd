package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExportRows maps the current menu onto export rows without recording an
// export. Used for previews.
func (s *Service) ExportRows() []ExportRow {
	return ExportRows(s.List())
}

// WriteExport writes the full export CSV for the current menu to w.
func (s *Service) WriteExport(ctx context.Context, w io.Writer) (int, error) {
	items := s.List()
	if err := WriteCSV(w, items); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}

	logAudit(ctx, s.audit, AuditLogParams{
		Action:       ActionExport,
		RowsAffected: len(items),
		Reason:       fmt.Sprintf("Exported %d items", len(items)),
	})
	return len(items), nil
}

// ExportFileName returns the name for an export made now.
func (s *Service) ExportFileName() string {
	return ExportFileName(s.cfg.ExportFilePrefix, s.now())
}

// ExportToDir writes the export CSV into the configured export directory
// and returns the file path.
func (s *Service) ExportToDir(ctx context.Context) (string, error) {
	dir := s.ExportDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteExport(ctx, &buf); err != nil {
		return "", err
	}

	path := filepath.Join(dir, s.ExportFileName())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}
