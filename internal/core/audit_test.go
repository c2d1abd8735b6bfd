package core

import (
	"fmt"
	"testing"
)

func TestMemoryAudit_Ring(t *testing.T) {
	audit := NewMemoryAudit(3)
	ctx := t.Context()

	for i := 1; i <= 5; i++ {
		action := ActionItemAdd
		if i%2 == 0 {
			action = ActionExport
		}
		entry := NewAuditEntry(ctx, AuditLogParams{Action: action, SKU: fmt.Sprintf("SKU-%d", i)})
		if err := audit.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if audit.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", audit.Len())
	}

	entries, err := audit.Recent(ctx, AuditLogFilter{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"SKU-5", "SKU-4", "SKU-3"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, sku := range want {
		if entries[i].SKU != sku {
			t.Errorf("entries[%d].SKU = %q, want %q", i, entries[i].SKU, sku)
		}
	}
}

func TestMemoryAudit_Filter(t *testing.T) {
	audit := NewMemoryAudit(10)
	ctx := t.Context()

	for _, a := range []AuditAction{ActionItemAdd, ActionImport, ActionItemAdd, ActionExport, ActionItemAdd} {
		_ = audit.Record(ctx, NewAuditEntry(ctx, AuditLogParams{Action: a}))
	}

	tests := []struct {
		name   string
		filter AuditLogFilter
		want   int
	}{
		{name: "everything", filter: AuditLogFilter{}, want: 5},
		{name: "by action", filter: AuditLogFilter{Action: ActionItemAdd}, want: 3},
		{name: "limit", filter: AuditLogFilter{Limit: 2}, want: 2},
		{name: "action and limit", filter: AuditLogFilter{Action: ActionItemAdd, Limit: 2}, want: 2},
		{name: "no match", filter: AuditLogFilter{Action: "delete"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := audit.Recent(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.want {
				t.Errorf("Recent(%+v) = %d entries, want %d", tt.filter, len(got), tt.want)
			}
		})
	}
}

func TestMemoryAudit_Empty(t *testing.T) {
	audit := NewMemoryAudit(0)
	got, err := audit.Recent(t.Context(), AuditLogFilter{})
	if err != nil || len(got) != 0 {
		t.Errorf("Recent() = %v, %v", got, err)
	}
}

func TestDetermineSeverity(t *testing.T) {
	tests := []struct {
		action AuditAction
		want   AuditSeverity
	}{
		{ActionImport, SeverityHigh},
		{ActionItemAdd, SeverityMedium},
		{ActionExport, SeverityLow},
	}

	for _, tt := range tests {
		if got := determineSeverity(tt.action); got != tt.want {
			t.Errorf("determineSeverity(%s) = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestNewAuditEntry(t *testing.T) {
	ctx := WithRequestMeta(t.Context(), RequestMeta{IPAddress: "198.51.100.4", UserAgent: "curl/8"})
	entry := NewAuditEntry(ctx, AuditLogParams{
		Action:       ActionImport,
		ImportID:     "abc",
		RowsAffected: 3,
		Reason:       "Imported menu.csv",
	})

	if entry.ID == "" || entry.CreatedAt.IsZero() {
		t.Errorf("entry missing id or timestamp: %+v", entry)
	}
	if entry.IPAddress != "198.51.100.4" || entry.UserAgent != "curl/8" {
		t.Errorf("request meta = %q %q", entry.IPAddress, entry.UserAgent)
	}
	if entry.Severity != SeverityHigh || entry.RowsAffected != 3 {
		t.Errorf("entry = %+v", entry)
	}

	bare := NewAuditEntry(t.Context(), AuditLogParams{Action: ActionExport})
	if bare.IPAddress != "" || bare.UserAgent != "" {
		t.Errorf("expected empty request meta, got %+v", bare)
	}
}
