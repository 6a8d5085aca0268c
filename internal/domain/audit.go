package domain

import (
	"context"
	"time"
)

// AuditEntry is one persisted audit event as shown to administrators.
type AuditEntry struct {
	ID         int64
	Timestamp  time.Time
	EventType  string
	Severity   string
	Actor      string
	Resource   string
	ResourceID string
	IP         string
	RequestID  string
	Details    map[string]any
}

// AuditFilter narrows the audit log. Zero values match everything.
type AuditFilter struct {
	Severity  string
	EventType string
	Actor     string
	Limit     int
	Offset    int
}

// AuditSummary counts recent events for the audit page header.
type AuditSummary struct {
	Total             int64
	BySeverity        map[string]int64
	FailedLogins24h   int64
	CSRFViolations24h int64
}

type AuditRepository interface {
	ListEvents(ctx context.Context, filter AuditFilter) ([]AuditEntry, int64, error)
	Summary(ctx context.Context) (*AuditSummary, error)
}

type AuditUsecase interface {
	ListAuditEvents(ctx context.Context, q ListQuery) (*Page[AuditEntry], error)
	Summary(ctx context.Context) (*AuditSummary, error)
}
