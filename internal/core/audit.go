package core

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionItemAdd AuditAction = "item_add"
	ActionImport  AuditAction = "import"
	ActionExport  AuditAction = "export"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

const (
	// DefaultAuditLimit caps audit queries that don't set a limit.
	DefaultAuditLimit = 100

	// DefaultAuditCapacity is the size of the in-memory audit ring.
	DefaultAuditCapacity = 1000
)

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string        `json:"id"`
	Action       AuditAction   `json:"action"`
	Severity     AuditSeverity `json:"severity"`
	SKU          string        `json:"sku,omitempty"`
	ImportID     string        `json:"importId,omitempty"`
	RowsAffected int           `json:"rowsAffected,omitempty"`
	IPAddress    string        `json:"ipAddress,omitempty"`
	UserAgent    string        `json:"userAgent,omitempty"`
	Reason       string        `json:"reason,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	SKU          string
	ImportID     string
	RowsAffected int
	Reason       string
}

// AuditLogFilter narrows an audit query. Zero values match everything.
type AuditLogFilter struct {
	Action AuditAction
	Limit  int
}

// AuditSink stores audit entries.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
	Recent(ctx context.Context, filter AuditLogFilter) ([]AuditEntry, error)
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionImport:
		return SeverityHigh
	case ActionExport:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// NewAuditEntry builds an entry from params, taking the client address and
// user agent from ctx.
func NewAuditEntry(ctx context.Context, params AuditLogParams) AuditEntry {
	meta := RequestMetaFromContext(ctx)
	return AuditEntry{
		ID:           uuid.NewString(),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action),
		SKU:          params.SKU,
		ImportID:     params.ImportID,
		RowsAffected: params.RowsAffected,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Reason:       params.Reason,
		CreatedAt:    time.Now().UTC(),
	}
}

// MemoryAudit keeps the most recent entries in a fixed-size ring.
type MemoryAudit struct {
	mu      sync.Mutex
	entries []AuditEntry
	next    int
	full    bool
}

// NewMemoryAudit returns a ring holding up to capacity entries.
func NewMemoryAudit(capacity int) *MemoryAudit {
	if capacity <= 0 {
		capacity = DefaultAuditCapacity
	}
	return &MemoryAudit{entries: make([]AuditEntry, capacity)}
}

// Record stores entry, overwriting the oldest once the ring is full.
func (m *MemoryAudit) Record(_ context.Context, entry AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[m.next] = entry
	m.next = (m.next + 1) % len(m.entries)
	if m.next == 0 {
		m.full = true
	}
	return nil
}

// Recent returns matching entries, newest first.
func (m *MemoryAudit) Recent(_ context.Context, filter AuditLogFilter) ([]AuditEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditLimit
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.next
	if m.full {
		n = len(m.entries)
	}

	out := make([]AuditEntry, 0, min(n, filter.Limit))
	for i := 1; i <= n && len(out) < filter.Limit; i++ {
		e := m.entries[(m.next-i+len(m.entries))%len(m.entries)]
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Len returns the number of entries held.
func (m *MemoryAudit) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.full {
		return len(m.entries)
	}
	return m.next
}

// logAudit records an entry and logs failures without returning them.
func logAudit(ctx context.Context, sink AuditSink, params AuditLogParams) {
	if sink == nil {
		return
	}
	entry := NewAuditEntry(ctx, params)
	if err := sink.Record(ctx, entry); err != nil {
		slog.Warn("audit record failed",
			"action", entry.Action,
			"sku", entry.SKU,
			"error", err,
		)
	}
}
