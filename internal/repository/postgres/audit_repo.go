package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/logger"

	"github.com/jackc/pgx/v5"
)

// querier is the subset of *pgxpool.Pool the repository needs.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AuditRepository reads the console_audit_events table written by the
// audit logger.
type AuditRepository struct {
	db querier
}

func NewAuditRepository(db querier) domain.AuditRepository {
	return &AuditRepository{db: db}
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// auditWhere builds the WHERE clause for filter, numbering placeholders
// from $1.
func auditWhere(filter domain.AuditFilter) (string, []any) {
	var clauses []string
	var args []any
	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.Severity != "" {
		add("severity = $%d", strings.ToUpper(filter.Severity))
	}
	if filter.EventType != "" {
		add("event_type = $%d", filter.EventType)
	}
	if filter.Actor != "" {
		add("actor ILIKE $%d", "%"+likeEscaper.Replace(filter.Actor)+"%")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// ListEvents returns one page of events, newest first, and the total count.
func (r *AuditRepository) ListEvents(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEntry, int64, error) {
	where, args := auditWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM console_audit_events"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit events: %w", err)
	}

	query := `
		SELECT id, created_at, event_type, severity,
		       COALESCE(actor, ''),
		       COALESCE(resource, ''),
		       COALESCE(resource_id, ''),
		       COALESCE(host(ip_address), ''),
		       COALESCE(request_id, ''),
		       COALESCE(details, '{}'::jsonb)
		FROM console_audit_events` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		var detailsJSON []byte
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.EventType, &e.Severity,
			&e.Actor, &e.Resource, &e.ResourceID, &e.IP,
			&e.RequestID, &detailsJSON,
		); err != nil {
			return nil, 0, fmt.Errorf("scan audit event: %w", err)
		}
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &e.Details); err != nil {
				logger.Log.Debug("audit details not decodable", "id", e.ID, "error", err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read audit events: %w", err)
	}
	return entries, total, nil
}

// Summary counts all events, the last week by severity, and the failed
// logins and CSRF violations of the last day.
func (r *AuditRepository) Summary(ctx context.Context) (*domain.AuditSummary, error) {
	summary := &domain.AuditSummary{BySeverity: make(map[string]int64)}

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM console_audit_events`).Scan(&summary.Total); err != nil {
		return nil, fmt.Errorf("count audit events: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT severity, COUNT(*)
		FROM console_audit_events
		WHERE created_at > NOW() - INTERVAL '7 days'
		GROUP BY severity
	`)
	if err != nil {
		return nil, fmt.Errorf("query severity counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("scan severity count: %w", err)
		}
		summary.BySeverity[severity] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read severity counts: %w", err)
	}

	err = r.db.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE event_type = 'login_failed'),
			COUNT(*) FILTER (WHERE event_type = 'csrf_violation')
		FROM console_audit_events
		WHERE created_at > NOW() - INTERVAL '24 hours'
	`).Scan(&summary.FailedLogins24h, &summary.CSRFViolations24h)
	if err != nil {
		return nil, fmt.Errorf("count recent failures: %w", err)
	}

	return summary, nil
}
