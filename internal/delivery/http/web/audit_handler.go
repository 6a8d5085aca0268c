package web

import (
	"errors"
	"net/http"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

const auditBase = "/audit"

type AuditHandler struct {
	auditUC domain.AuditUsecase
}

type auditPageData struct {
	Summary *domain.AuditSummary
	Events  *domain.Page[domain.AuditEntry]
}

// NewAuditHandler registers the audit log viewer on an admin-only group.
func NewAuditHandler(r gin.IRouter, auditUC domain.AuditUsecase) {
	h := &AuditHandler{auditUC: auditUC}
	r.GET("", h.List)
}

// List shows the recent-activity summary above one page of events.
// A failing summary only hides the counters.
func (h *AuditHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	page := newPage(c, "Audit log")
	page.Query = listQuery(c)
	data := &auditPageData{}
	page.Data = data

	events, err := h.auditUC.ListAuditEvents(ctx, page.Query)
	if err != nil {
		data.Events = &domain.Page[domain.AuditEntry]{Page: page.Query.Page}
		message := "Failed to fetch audit events"
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusServiceUnavailable {
			message = appErr.Message
		}
		renderListFailure(c, "audit_list", page, err, message)
		return
	}
	data.Events = events

	if data.Summary, err = h.auditUC.Summary(ctx); err != nil {
		logger.Log.Warn("audit summary failed", "error", err)
	}
	renderPage(c, http.StatusOK, "audit_list", page)
}
