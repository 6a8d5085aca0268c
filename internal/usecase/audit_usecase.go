package usecase

import (
	"context"
	"net/http"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
)

const msgAuditUnavailable = "The audit log is not available. Set DATABASE_URL to enable it."

type auditUsecase struct {
	repo domain.AuditRepository
}

// NewAuditUsecase serves the persisted audit log. A nil repo means audit
// events are not stored, and every call reports 503.
func NewAuditUsecase(repo domain.AuditRepository) domain.AuditUsecase {
	return &auditUsecase{repo: repo}
}

// ListAuditEvents maps the list query onto the audit filter: search matches
// the actor and status selects a severity.
func (u *auditUsecase) ListAuditEvents(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.AuditEntry], error) {
	if u.repo == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, msgAuditUnavailable, nil)
	}
	q = q.Normalize()

	entries, total, err := u.repo.ListEvents(ctx, domain.AuditFilter{
		Severity: q.Status,
		Actor:    q.Search,
		Limit:    q.Size,
		Offset:   q.Page * q.Size,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.Page[domain.AuditEntry]{
		Items:      entries,
		Page:       q.Page,
		TotalPages: int((total + int64(q.Size) - 1) / int64(q.Size)),
	}, nil
}

func (u *auditUsecase) Summary(ctx context.Context) (*domain.AuditSummary, error) {
	if u.repo == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, msgAuditUnavailable, nil)
	}
	summary, err := u.repo.Summary(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return summary, nil
}
