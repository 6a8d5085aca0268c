package security

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of *pgxpool.Pool the repository needs.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AuditEventRepository persists audit events to postgres.
type AuditEventRepository struct {
	db Execer
}

func NewAuditEventRepository(db Execer) *AuditEventRepository {
	return &AuditEventRepository{db: db}
}

const insertAuditEvent = `
	INSERT INTO console_audit_events (
		event_type, service, environment, severity,
		actor, resource, resource_id, ip_address, user_agent,
		request_id, details, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

// PersistEvent inserts event into console_audit_events.
func (r *AuditEventRepository) PersistEvent(ctx context.Context, event AuditEvent) error {
	detailsJSON := []byte("null")
	if len(event.Details) > 0 {
		raw, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
		detailsJSON = raw
	}

	var ipAddr any
	if event.IP != "" {
		ipAddr = event.IP
	}

	_, err := r.db.Exec(ctx, insertAuditEvent,
		string(event.Event),
		event.Service,
		event.Environment,
		string(event.Severity),
		event.Actor,
		event.Resource,
		event.ResourceID,
		ipAddr,
		event.UserAgent,
		event.RequestID,
		detailsJSON,
		event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("persist audit event: %w", err)
	}
	return nil
}

// PersistFunc adapts the repository for AuditLogger.SetPersistFunc.
func (r *AuditEventRepository) PersistFunc() PersistFunc {
	return r.PersistEvent
}
