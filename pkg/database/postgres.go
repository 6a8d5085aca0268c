package database

import (
	"context"
	"fmt"
	"time"

	"recruitment-console/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgresConnection opens a small pool for the audit log.
func NewPostgresConnection(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	// PgBouncer transaction mode rejects named prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	config.MaxConns = 5
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Log.Info("Database connection established")
	return pool, nil
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS console_audit_events (
	id           BIGSERIAL PRIMARY KEY,
	event_type   TEXT NOT NULL,
	service      TEXT NOT NULL,
	environment  TEXT NOT NULL,
	severity     TEXT NOT NULL,
	actor        TEXT,
	resource     TEXT,
	resource_id  TEXT,
	ip_address   INET,
	user_agent   TEXT,
	request_id   TEXT,
	details      JSONB,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_console_audit_events_created_at ON console_audit_events (created_at DESC);
`

// EnsureAuditSchema creates the audit table when it does not exist yet.
func EnsureAuditSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return fmt.Errorf("create audit schema: %w", err)
	}
	return nil
}
