package usecase

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"recruitment-console/internal/domain"
	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/security"
	"recruitment-console/pkg/security/antivirus"
	"recruitment-console/pkg/validation"
)

const (
	cvField = "cvAttachment"

	msgCVInfected    = "File failed the virus scan"
	msgCVUnscannable = "File could not be scanned, please try again later"
)

// CVGuard screens a CV attachment before it is forwarded to the resource server.
type CVGuard struct {
	validator *security.CVValidator
	scanner   antivirus.Scanner
	limiter   *security.UploadLimiter
	audit     *security.AuditLogger
}

// NewCVGuard builds a guard. A nil validator uses the default size limit, a
// nil scanner accepts every file and a nil limiter never throttles.
func NewCVGuard(validator *security.CVValidator, scanner antivirus.Scanner, limiter *security.UploadLimiter, audit *security.AuditLogger) *CVGuard {
	if validator == nil {
		validator = security.NewCVValidator(0)
	}
	if scanner == nil {
		scanner = antivirus.NewNoOpScanner()
	}
	return &CVGuard{
		validator: validator,
		scanner:   scanner,
		limiter:   limiter,
		audit:     audit,
	}
}

// Screen reads the upload and returns its content once the quota, file type
// and virus checks pass. File problems come back as a *validation.FormError
// on the cvAttachment field.
func (g *CVGuard) Screen(ctx context.Context, upload *domain.CVUpload) ([]byte, error) {
	meta := security.RequestMetaFromContext(ctx)
	allowed, retryAfter, err := g.limiter.AllowUpload(ctx, meta.IP, meta.Actor)
	if err != nil {
		g.reject(ctx, upload.Filename, "limiter_error")
		return nil, apperror.RequestFailed("Upload is temporarily unavailable", err)
	}
	if !allowed {
		g.reject(ctx, upload.Filename, "rate_limited")
		return nil, apperror.New(http.StatusTooManyRequests,
			fmt.Sprintf("Too many uploads, try again in %d seconds", retryAfter), nil)
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, g.validator.MaxBytes()+1))
	if err != nil {
		return nil, fmt.Errorf("read cv upload: %w", err)
	}

	result := g.validator.Validate(upload.Filename, data)
	if !result.Valid {
		g.reject(ctx, upload.Filename, result.Error)
		return nil, validation.NewFormError(cvField, result.Error)
	}

	scan := g.scanner.Scan(ctx, upload.Filename, data)
	if scan.Infected {
		if scan.Error != nil {
			logger.Log.Warn("cv scan did not complete", "scanner", scan.ScannerName, "error", scan.Error)
			g.reject(ctx, upload.Filename, "scan_failed")
			return nil, validation.NewFormError(cvField, msgCVUnscannable)
		}
		g.reject(ctx, upload.Filename, "infected: "+scan.ThreatName)
		return nil, validation.NewFormError(cvField, msgCVInfected)
	}
	return data, nil
}

func (g *CVGuard) reject(ctx context.Context, filename, reason string) {
	g.audit.Log(ctx, security.AuditEvent{
		Event:    security.EventUploadRejected,
		Resource: "candidate",
		Details:  map[string]any{"file": filename, "reason": reason},
	})
}
