package core

// audit_retention.go runs the periodic purge of old audit entries.
//
// Only sinks that implement AuditPruner are pruned; the in-memory ring
// bounds itself and needs no job.

import (
	"context"
	"log/slog"
	"time"
)

// AuditPruner deletes audit entries created before a cutoff.
type AuditPruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// RetentionConfig controls StartAuditRetention.
type RetentionConfig struct {
	Retention     time.Duration // Entries older than this are deleted (default: 90 days)
	CheckInterval time.Duration // How often to run (default: 24h)
}

// StartAuditRetention prunes entries older than cfg.Retention immediately
// and then every cfg.CheckInterval until ctx is cancelled.
func StartAuditRetention(ctx context.Context, pruner AuditPruner, cfg RetentionConfig) {
	if cfg.Retention <= 0 {
		cfg.Retention = 90 * 24 * time.Hour
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	slog.Info("audit retention started",
		"retention", cfg.Retention.String(),
		"interval", cfg.CheckInterval.String(),
	)

	runRetention(ctx, pruner, cfg.Retention)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			runRetention(ctx, pruner, cfg.Retention)
		}
	}
}

func runRetention(ctx context.Context, pruner AuditPruner, retention time.Duration) {
	start := time.Now()
	n, err := pruner.Prune(ctx, start.Add(-retention))
	if err != nil {
		slog.Error("audit prune failed", "error", err)
		return
	}
	slog.Info("pruned audit entries",
		"count", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
