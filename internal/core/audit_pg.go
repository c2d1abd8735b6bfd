package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS menu_audit_log (
	id            UUID PRIMARY KEY,
	action        TEXT NOT NULL,
	severity      TEXT NOT NULL,
	sku           TEXT,
	import_id     UUID,
	rows_affected INTEGER,
	ip_address    INET,
	user_agent    TEXT,
	reason        TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS menu_audit_log_created_at_idx ON menu_audit_log (created_at DESC);
`

// PgAudit stores audit entries in Postgres.
type PgAudit struct {
	pool *pgxpool.Pool
}

// PgPoolConfig configures the audit connection pool.
type PgPoolConfig struct {
	URL             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// ConnectPgAudit opens a pool for cfg, verifies the connection and prepares
// the audit table. The caller owns the returned sink and must Close it.
func ConnectPgAudit(ctx context.Context, cfg PgPoolConfig) (*PgAudit, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", describePgError(err))
	}

	audit, err := NewPgAudit(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return audit, nil
}

// Close releases the connection pool.
func (a *PgAudit) Close() {
	a.pool.Close()
}

// NewPgAudit creates the audit table if needed and returns a sink on pool.
func NewPgAudit(ctx context.Context, pool *pgxpool.Pool) (*PgAudit, error) {
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return nil, fmt.Errorf("create audit table: %w", describePgError(err))
	}
	return &PgAudit{pool: pool}, nil
}

// Record inserts entry.
func (a *PgAudit) Record(ctx context.Context, entry AuditEntry) error {
	var ip *netip.Addr
	if entry.IPAddress != "" {
		host := entry.IPAddress
		if h, _, err := net.SplitHostPort(host); err == nil {
			host = h
		}
		if addr, err := netip.ParseAddr(host); err == nil {
			ip = &addr
		}
	}

	_, err := a.pool.Exec(ctx,
		`INSERT INTO menu_audit_log
			(id, action, severity, sku, import_id, rows_affected, ip_address, user_agent, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		toPgUUID(entry.ID),
		string(entry.Action),
		string(entry.Severity),
		toPgText(entry.SKU),
		toPgUUID(entry.ImportID),
		toPgInt4(entry.RowsAffected),
		ip,
		toPgText(entry.UserAgent),
		toPgText(entry.Reason),
		pgtype.Timestamptz{Time: entry.CreatedAt, Valid: true},
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", describePgError(err))
	}
	return nil
}

// Recent returns matching entries, newest first.
func (a *PgAudit) Recent(ctx context.Context, filter AuditLogFilter) ([]AuditEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultAuditLimit
	}

	rows, err := a.pool.Query(ctx,
		`SELECT id, action, severity, sku, import_id, rows_affected, ip_address, user_agent, reason, created_at
		FROM menu_audit_log
		WHERE $1::text = '' OR action = $1::text
		ORDER BY created_at DESC
		LIMIT $2`,
		string(filter.Action), filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", describePgError(err))
	}
	defer rows.Close()

	entries := make([]AuditEntry, 0)
	for rows.Next() {
		entry, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Prune deletes entries created before the cutoff.
func (a *PgAudit) Prune(ctx context.Context, before time.Time) (int64, error) {
	tag, err := a.pool.Exec(ctx,
		`DELETE FROM menu_audit_log WHERE created_at < $1`,
		pgtype.Timestamptz{Time: before, Valid: true},
	)
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", describePgError(err))
	}
	return tag.RowsAffected(), nil
}

func scanAuditRow(rows pgx.Rows) (AuditEntry, error) {
	var (
		id           pgtype.UUID
		action       string
		severity     string
		sku          pgtype.Text
		importID     pgtype.UUID
		rowsAffected pgtype.Int4
		ipAddress    *netip.Addr
		userAgent    pgtype.Text
		reason       pgtype.Text
		createdAt    pgtype.Timestamptz
	)

	err := rows.Scan(&id, &action, &severity, &sku, &importID, &rowsAffected,
		&ipAddress, &userAgent, &reason, &createdAt)
	if err != nil {
		return AuditEntry{}, err
	}

	entry := AuditEntry{
		ID:        pgUUIDToString(id),
		Action:    AuditAction(action),
		Severity:  AuditSeverity(severity),
		SKU:       sku.String,
		ImportID:  pgUUIDToString(importID),
		UserAgent: userAgent.String,
		Reason:    reason.String,
		CreatedAt: createdAt.Time,
	}
	if rowsAffected.Valid {
		entry.RowsAffected = int(rowsAffected.Int32)
	}
	if ipAddress != nil {
		entry.IPAddress = ipAddress.String()
	}
	return entry, nil
}

// describePgError adds the SQLSTATE code to server errors.
func describePgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s (SQLSTATE %s): %w", pgErr.Message, pgErr.Code, err)
	}
	return err
}

func toPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

func toPgInt4(i int) pgtype.Int4 {
	if i == 0 {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(i), Valid: true}
}

func toPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

func pgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}
