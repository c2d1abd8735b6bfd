package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const importHeader = "Name,Category,Price,Description,SKU,Stock,Addons\n"

func newTestService(t *testing.T, cfg ServiceConfig) (*Service, *MemoryAudit) {
	t.Helper()
	audit := NewMemoryAudit(50)
	svc := NewService(NewStore(SeedItems(seedTime)), audit, cfg)
	svc.now = func() time.Time { return seedTime }
	return svc, audit
}

type failingAudit struct{}

func (failingAudit) Record(context.Context, AuditEntry) error {
	return errors.New("audit store unavailable")
}

func (failingAudit) Recent(context.Context, AuditLogFilter) ([]AuditEntry, error) {
	return nil, errors.New("audit store unavailable")
}

func TestService_AddFields(t *testing.T) {
	svc, audit := newTestService(t, ServiceConfig{})
	ctx := WithRequestMeta(t.Context(), RequestMeta{IPAddress: "203.0.113.9", UserAgent: "test"})

	item, err := svc.AddFields(ctx, validFields())
	if err != nil {
		t.Fatalf("AddFields() error = %v", err)
	}
	if !item.AddedAt.Equal(seedTime) {
		t.Errorf("AddedAt = %v, want %v", item.AddedAt, seedTime)
	}

	if svc.Len() != 30 {
		t.Errorf("Len() = %d, want 30", svc.Len())
	}
	list := svc.List()
	if list[len(list)-1].Name != "Cheese Fries" {
		t.Errorf("last item = %q, want Cheese Fries", list[len(list)-1].Name)
	}

	entries, _ := audit.Recent(t.Context(), AuditLogFilter{})
	if len(entries) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Action != ActionItemAdd || e.SKU != "PHI-FRI-002" || e.Severity != SeverityMedium {
		t.Errorf("entry = %+v", e)
	}
	if e.IPAddress != "203.0.113.9" || e.UserAgent != "test" {
		t.Errorf("request meta not recorded: %+v", e)
	}
	if e.Reason != "Added Cheese Fries to Starters" {
		t.Errorf("Reason = %q", e.Reason)
	}
}

func TestService_AddFieldsRejected(t *testing.T) {
	svc, audit := newTestService(t, ServiceConfig{})

	_, err := svc.AddFields(t.Context(), map[string]string{"name": "Only a name"})
	ve, ok := AsValidationErrors(err)
	if !ok {
		t.Fatalf("AddFields() error = %v, want ValidationErrors", err)
	}
	if len(ve) != 4 {
		t.Errorf("got %d field errors, want 4", len(ve))
	}
	if svc.Len() != 29 {
		t.Errorf("Len() = %d, want 29", svc.Len())
	}
	if audit.Len() != 0 {
		t.Errorf("rejected add was audited")
	}
}

func TestService_AddSurvivesAuditFailure(t *testing.T) {
	svc := NewService(NewStore(nil), failingAudit{}, ServiceConfig{})

	if _, err := svc.AddFields(t.Context(), validFields()); err != nil {
		t.Fatalf("AddFields() error = %v", err)
	}
	if svc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", svc.Len())
	}
}

func TestService_Import(t *testing.T) {
	svc, audit := newTestService(t, ServiceConfig{})

	data := importHeader +
		"Cheese Fries,Starters,6.50,Fries with cheese,PHI-FRI-002,,\n" +
		"Taco,Tacos,3,Not on the menu,PHI-TAC-001,,\n" +
		",,,,,,\n" +
		"Tiramisu,desserts,$7,Coffee soaked,PHI-DES-001,onbackorder,none\n" +
		"Steak Salad,Salads,abc,,PHI-SAL-009,,protein\n"

	result, err := svc.Import(t.Context(), "menu.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if result.TotalRows != 4 {
		t.Errorf("TotalRows = %d, want 4", result.TotalRows)
	}
	if result.Added != 2 {
		t.Errorf("Added = %d, want 2", result.Added)
	}
	if len(result.FailedRows) != 2 {
		t.Fatalf("FailedRows = %d, want 2", len(result.FailedRows))
	}
	if result.FailedRows[0].LineNumber != 3 || !strings.Contains(result.FailedRows[0].Reason, "invalid category") {
		t.Errorf("first failure = %+v", result.FailedRows[0])
	}
	if result.FailedRows[1].LineNumber != 6 {
		t.Errorf("second failure line = %d, want 6", result.FailedRows[1].LineNumber)
	}
	if result.ImportID == "" || result.FileName != "menu.csv" {
		t.Errorf("result = %+v", result)
	}

	list := svc.List()
	if len(list) != 31 {
		t.Fatalf("Len() = %d, want 31", len(list))
	}
	last := list[30]
	if last.Name != "Tiramisu" || last.Category != CategoryDesserts || last.Stock != StockOnBackorder || last.Price != 7 {
		t.Errorf("imported item = %+v", last)
	}

	entries, _ := audit.Recent(t.Context(), AuditLogFilter{Action: ActionImport})
	if len(entries) != 1 || entries[0].RowsAffected != 2 || entries[0].ImportID != result.ImportID {
		t.Errorf("import audit = %+v", entries)
	}
	if entries[0].Severity != SeverityHigh {
		t.Errorf("import severity = %q, want high", entries[0].Severity)
	}
}

func TestService_ImportBOMAndHeaderCase(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})

	data := "\ufeffsku,NAME,category,price,description\n" +
		"PHI-BEV-001,Lemonade,Beverages,3,Fresh squeezed\n"

	result, err := svc.Import(t.Context(), "bom.csv", strings.NewReader(data))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if result.Added != 1 {
		t.Errorf("Added = %d, want 1", result.Added)
	}
}

func TestService_ImportErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		maxSize  int64
		wantErr  error
		wantCode string
	}{
		{name: "empty", data: "", wantErr: ErrEmptyFile, wantCode: "FILE003"},
		{name: "header only", data: importHeader, wantErr: ErrEmptyFile, wantCode: "FILE003"},
		{name: "missing columns", data: "Name,Price\nFries,3\n", wantCode: "VAL006"},
		{
			name:     "too large",
			data:     importHeader + strings.Repeat("Fries,Starters,3,Crispy,PHI-FRI-009,,\n", 20),
			maxSize:  128,
			wantErr:  ErrFileTooLarge,
			wantCode: "FILE001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, audit := newTestService(t, ServiceConfig{MaxImportSize: tt.maxSize})

			_, err := svc.Import(t.Context(), "bad.csv", strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("Import() expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if got := MapError(err).Code; got != tt.wantCode {
				t.Errorf("MapError code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
			if svc.Len() != 29 {
				t.Errorf("store changed: Len() = %d", svc.Len())
			}
			if audit.Len() != 0 {
				t.Error("failed import was audited")
			}
		})
	}
}

func TestService_ImportCancelled(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	data := importHeader + "Fries,Starters,3,Crispy,PHI-FRI-009,,\n"
	_, err := svc.Import(ctx, "menu.csv", strings.NewReader(data))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Import() error = %v, want context.Canceled", err)
	}
	if svc.Len() != 29 {
		t.Errorf("Len() = %d, want 29", svc.Len())
	}
}

func TestService_ImportTooManyConcurrent(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{MaxConcurrentImports: 1, ImportWait: 20 * time.Millisecond})

	if err := svc.imports.Acquire(t.Context()); err != nil {
		t.Fatal(err)
	}
	defer svc.imports.Release()

	_, err := svc.Import(t.Context(), "menu.csv", strings.NewReader(importHeader))
	if !errors.Is(err, ErrTooManyImports) {
		t.Fatalf("Import() error = %v, want ErrTooManyImports", err)
	}
	if MapError(err).Code != "RATE002" {
		t.Errorf("code = %q, want RATE002", MapError(err).Code)
	}
}

func TestService_ImportDirFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.csv":     importHeader + "Cola,Beverages,2,Cold,PHI-BEV-002,,\n",
		"a.csv":     importHeader + "Cannoli,Desserts,4,Sweet,PHI-DES-002,,\n",
		"c.csv":     "",
		"notes.txt": "not a csv",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	svc, _ := newTestService(t, ServiceConfig{ImportDir: dir})
	results, err := svc.ImportDirFiles(t.Context())
	if err != nil {
		t.Fatalf("ImportDirFiles() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].FileName != "a.csv" || results[1].FileName != "b.csv" {
		t.Errorf("files imported out of order: %s, %s", results[0].FileName, results[1].FileName)
	}
	if svc.Len() != 31 {
		t.Errorf("Len() = %d, want 31", svc.Len())
	}
}

func TestService_ImportDirFilesErrors(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	if _, err := svc.ImportDirFiles(t.Context()); MapError(err).Code != "FILE004" {
		t.Errorf("unset dir error = %v, want FILE004", err)
	}

	svc, _ = newTestService(t, ServiceConfig{ImportDir: t.TempDir()})
	if _, err := svc.ImportDirFiles(t.Context()); MapError(err).Code != "FILE004" {
		t.Errorf("empty dir error = %v, want FILE004", err)
	}
}

func TestService_WriteExport(t *testing.T) {
	svc, audit := newTestService(t, ServiceConfig{})

	var buf bytes.Buffer
	n, err := svc.WriteExport(t.Context(), &buf)
	if err != nil {
		t.Fatalf("WriteExport() error = %v", err)
	}
	if n != 29 {
		t.Errorf("exported %d items, want 29", n)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 30 {
		t.Errorf("got %d records, want 30", len(records))
	}

	entries, _ := audit.Recent(t.Context(), AuditLogFilter{Action: ActionExport})
	if len(entries) != 1 || entries[0].RowsAffected != 29 || entries[0].Severity != SeverityLow {
		t.Errorf("export audit = %+v", entries)
	}

	// Previews are not audited.
	if rows := svc.ExportRows(); len(rows) != 29 {
		t.Errorf("ExportRows() = %d rows", len(rows))
	}
	if audit.Len() != 1 {
		t.Errorf("audit entries = %d, want 1", audit.Len())
	}
}

func TestService_ExportToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	svc, _ := newTestService(t, ServiceConfig{ExportDir: dir})

	path, err := svc.ExportToDir(t.Context())
	if err != nil {
		t.Fatalf("ExportToDir() error = %v", err)
	}
	if want := filepath.Join(dir, "philly-me-up-menu-20240101.csv"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "ID,Type,SKU,Name,") {
		t.Errorf("file starts %q", string(data[:20]))
	}
}

func TestService_ExportFilePrefix(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestService(t, ServiceConfig{ExportDir: dir, ExportFilePrefix: "south-street-menu"})

	if got := svc.ExportFileName(); got != "south-street-menu-20240101.csv" {
		t.Errorf("ExportFileName() = %q", got)
	}
	path, err := svc.ExportToDir(t.Context())
	if err != nil {
		t.Fatalf("ExportToDir() error = %v", err)
	}
	if want := filepath.Join(dir, "south-street-menu-20240101.csv"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestService_Dirs(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	if svc.ExportDir() != "." {
		t.Errorf("ExportDir() = %q, want .", svc.ExportDir())
	}
	if svc.ImportDir() != "" {
		t.Errorf("ImportDir() = %q, want empty", svc.ImportDir())
	}
}

func TestService_Stats(t *testing.T) {
	svc, _ := newTestService(t, ServiceConfig{})
	if _, err := svc.AddFields(t.Context(), validFields()); err != nil {
		t.Fatal(err)
	}

	stats := svc.Stats()
	if stats.TotalItems != 30 || stats.Recent[0].Name != "Cheese Fries" {
		t.Errorf("stats = %d items, recent %q", stats.TotalItems, stats.Recent[0].Name)
	}
}
