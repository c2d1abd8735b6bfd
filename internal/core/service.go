package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultMaxImportSize bounds import files when no limit is configured.
const DefaultMaxImportSize int64 = 10 << 20

// ServiceConfig holds tunables for a Service.
type ServiceConfig struct {
	// MaxImportSize is the largest accepted import file in bytes.
	MaxImportSize int64
	// ExportDir receives export files written by ExportToDir.
	ExportDir string
	// ExportFilePrefix starts export file names. Empty means
	// DefaultExportFilePrefix.
	ExportFilePrefix string
	// ImportDir is searched by ImportDirFiles.
	ImportDir string
	// MaxConcurrentImports and ImportWait configure the ImportLimiter.
	MaxConcurrentImports int
	ImportWait           time.Duration
}

// Service provides the menu operations shared by the web server and the
// terminal UI. It serializes access to one Store and records an audit
// entry for every add, import and export.
type Service struct {
	mu    sync.RWMutex
	store *Store

	audit   AuditSink
	imports *ImportLimiter
	cfg     ServiceConfig
	now     func() time.Time
}

// NewService creates a Service over store. A nil audit sink falls back to
// an in-memory ring.
func NewService(store *Store, audit AuditSink, cfg ServiceConfig) *Service {
	if audit == nil {
		audit = NewMemoryAudit(DefaultAuditCapacity)
	}
	if cfg.MaxImportSize <= 0 {
		cfg.MaxImportSize = DefaultMaxImportSize
	}
	return &Service{
		store:   store,
		audit:   audit,
		imports: NewImportLimiter(cfg.MaxConcurrentImports, cfg.ImportWait),
		cfg:     cfg,
		now:     time.Now,
	}
}

// List returns every item in insertion order.
func (s *Service) List() []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.List()
}

// Filter returns the items matching f in insertion order.
func (s *Service) Filter(f Filter) []MenuItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Filter(f)
}

// Categories returns the distinct categories on the menu, sorted.
func (s *Service) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Categories()
}

// Len returns the number of items on the menu.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Len()
}

// Stats computes dashboard figures over the current menu.
func (s *Service) Stats() MenuStats {
	return ComputeStats(s.List())
}

// Add validates item and appends it to the menu.
// A zero AddedAt is set to the current time.
func (s *Service) Add(ctx context.Context, item MenuItem) (MenuItem, error) {
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now().UTC()
	}
	if item.Stock == "" {
		item.Stock = StockInStock
	}

	s.mu.Lock()
	err := s.store.Add(item)
	s.mu.Unlock()
	if err != nil {
		return MenuItem{}, err
	}

	logAudit(ctx, s.audit, AuditLogParams{
		Action:       ActionItemAdd,
		SKU:          item.SKU,
		RowsAffected: 1,
		Reason:       fmt.Sprintf("Added %s to %s", item.Name, item.Category),
	})
	return item, nil
}

// AddFields parses raw form values and adds the resulting item.
func (s *Service) AddFields(ctx context.Context, fields map[string]string) (MenuItem, error) {
	item, err := ParseItem(fields)
	if err != nil {
		return MenuItem{}, err
	}
	return s.Add(ctx, item)
}

// WaitForImports blocks until running imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.imports.WaitForDrain(ctx)
}

// AuditLog returns recent audit entries, newest first.
func (s *Service) AuditLog(ctx context.Context, filter AuditLogFilter) ([]AuditEntry, error) {
	return s.audit.Recent(ctx, filter)
}

// ImportDir returns the directory searched by ImportDirFiles.
func (s *Service) ImportDir() string {
	return s.cfg.ImportDir
}

// ExportDir returns the directory ExportToDir writes into.
func (s *Service) ExportDir() string {
	if s.cfg.ExportDir == "" {
		return "."
	}
	return s.cfg.ExportDir
}
