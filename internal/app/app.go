// Package app wires configuration into a ready core.Service for the
// server and terminal commands.
package app

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/menumanager/internal/config"
	"github.com/JonMunkholm/menumanager/internal/core"
)

// App holds the service and the resources behind it.
type App struct {
	Service *core.Service

	pgAudit    *core.PgAudit
	cancelJobs context.CancelFunc
}

// New builds the menu store from the seed menu, picks the audit sink and
// starts background jobs. Close releases everything New started.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	var sink core.AuditSink
	if cfg.Audit.Persistent() {
		pg, err := core.ConnectPgAudit(ctx, core.PgPoolConfig{
			URL:             cfg.Audit.DatabaseURL,
			MaxConns:        cfg.Audit.MaxConns,
			MinConns:        cfg.Audit.MinConns,
			MaxConnLifetime: cfg.Audit.MaxConnLifetime,
		})
		if err != nil {
			return nil, err
		}
		a.pgAudit = pg
		sink = pg
		slog.Info("audit log in postgres", "database", databaseName(cfg.Audit.DatabaseURL))
	} else {
		sink = core.NewMemoryAudit(cfg.Audit.MemoryCapacity)
		slog.Info("audit log in memory", "capacity", cfg.Audit.MemoryCapacity)
	}

	seed := core.SeedItems(time.Now())
	a.Service = core.NewService(core.NewStore(seed), sink, core.ServiceConfig{
		MaxImportSize:        cfg.Import.MaxFileSize,
		ExportDir:            cfg.Export.Dir,
		ExportFilePrefix:     cfg.Export.FilePrefix,
		ImportDir:            cfg.Import.Dir,
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
	})
	slog.Info("menu loaded", "items", len(seed))

	jobCtx, cancel := context.WithCancel(context.Background())
	a.cancelJobs = cancel
	if a.pgAudit != nil {
		go core.StartAuditRetention(jobCtx, a.pgAudit, core.RetentionConfig{
			Retention:     cfg.Audit.Retention(),
			CheckInterval: cfg.Audit.CheckInterval,
		})
	}

	return a, nil
}

// Close stops background jobs and closes the database pool, if any.
func (a *App) Close() {
	if a.cancelJobs != nil {
		a.cancelJobs()
	}
	if a.pgAudit != nil {
		a.pgAudit.Close()
	}
}

// databaseName extracts the database name for logging without credentials.
func databaseName(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
