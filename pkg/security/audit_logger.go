package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType names an audited action.
type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventLogout             EventType = "logout"
	EventSessionExpired     EventType = "session_expired"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventValidationFailed   EventType = "validation_failed"
	EventCSRFViolation      EventType = "csrf_violation"
	EventUploadRejected     EventType = "upload_rejected"
	EventCVUploaded         EventType = "cv_uploaded"

	EventCandidateCreated EventType = "candidate_created"
	EventCandidateUpdated EventType = "candidate_updated"
	EventCandidateDeleted EventType = "candidate_deleted"
	EventUserCreated      EventType = "user_created"
	EventUserUpdated      EventType = "user_updated"
	EventJobCreated       EventType = "job_created"
	EventJobUpdated       EventType = "job_updated"
	EventJobDeleted       EventType = "job_deleted"
	EventInterviewCreated EventType = "interview_created"
	EventInterviewUpdated EventType = "interview_updated"
	EventInterviewDeleted EventType = "interview_deleted"
	EventOfferCreated     EventType = "offer_created"
	EventOfferUpdated     EventType = "offer_updated"
	EventOfferDeleted     EventType = "offer_deleted"
)

// AuditEvent is one audited action by a console user.
type AuditEvent struct {
	Timestamp   time.Time      `json:"timestamp"`
	Service     string         `json:"service"`
	Environment string         `json:"env"`
	Severity    Severity       `json:"severity"`
	Event       EventType      `json:"event"`
	Actor       string         `json:"actor,omitempty"`
	Resource    string         `json:"resource,omitempty"`
	ResourceID  string         `json:"resource_id,omitempty"`
	IP          string         `json:"ip,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// PersistFunc stores an event somewhere durable.
type PersistFunc func(ctx context.Context, event AuditEvent) error

type requestMetaKey struct{}

// RequestMeta is the request-scoped information every audit event carries.
type RequestMeta struct {
	Actor     string
	IP        string
	UserAgent string
	RequestID string
}

// WithRequestMeta stores meta on ctx for AuditLogger.Log to pick up.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the stored meta, or the zero value.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	if ctx == nil {
		return RequestMeta{}
	}
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}

// AuditLogger writes audit events through zap and optionally persists them.
type AuditLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc PersistFunc
	timeout     time.Duration
}

// NewAuditLogger builds a production zap logger writing JSON to stdout.
func NewAuditLogger(serviceName, environment string) *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		logger = zap.NewNop()
	}
	return NewAuditLoggerWithZap(logger, serviceName, environment)
}

// NewAuditLoggerWithZap wraps an existing zap logger.
func NewAuditLoggerWithZap(logger *zap.Logger, serviceName, environment string) *AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
		timeout:     5 * time.Second,
	}
}

// SetPersistFunc enables asynchronous persistence of every event.
func (l *AuditLogger) SetPersistFunc(f PersistFunc) {
	l.persistFunc = f
}

// Log records event. Missing request fields are filled from ctx.
func (l *AuditLogger) Log(ctx context.Context, event AuditEvent) {
	if l == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment
	event.Severity = GetSeverity(event.Event)

	meta := RequestMetaFromContext(ctx)
	if event.Actor == "" {
		event.Actor = meta.Actor
	}
	if event.IP == "" {
		event.IP = meta.IP
	}
	if event.UserAgent == "" {
		event.UserAgent = meta.UserAgent
	}
	if event.RequestID == "" {
		event.RequestID = meta.RequestID
	}

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("severity", string(event.Severity)),
	}
	optional := []struct{ key, value string }{
		{"actor", event.Actor},
		{"resource", event.Resource},
		{"resource_id", event.ResourceID},
		{"ip", event.IP},
		{"user_agent", event.UserAgent},
		{"request_id", event.RequestID},
	}
	for _, f := range optional {
		if f.value != "" {
			fields = append(fields, zap.String(f.key, f.value))
		}
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(event.Severity.zapLevel(), string(event.Event), fields...)

	if l.persistFunc != nil {
		go func(e AuditEvent) {
			// Detached from the request, which is usually finished by now.
			ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
			defer cancel()
			if err := l.persistFunc(ctx, e); err != nil {
				l.zapLogger.Error("failed to persist audit event", zap.String("event", string(e.Event)), zap.Error(err))
			}
		}(event)
	}
}

// LogLoginFailed records a rejected login with a reason code.
func (l *AuditLogger) LogLoginFailed(ctx context.Context, reason string) {
	l.Log(ctx, AuditEvent{
		Event:   EventLoginFailed,
		Details: map[string]any{"reason": reason},
	})
}

// LogMutation records a create, update or delete of a remote resource.
func (l *AuditLogger) LogMutation(ctx context.Context, event EventType, resource, resourceID string) {
	l.Log(ctx, AuditEvent{
		Event:      event,
		Resource:   resource,
		ResourceID: resourceID,
	})
}

// LogRateLimitTriggered records a throttled request.
func (l *AuditLogger) LogRateLimitTriggered(ctx context.Context, endpoint string) {
	l.Log(ctx, AuditEvent{
		Event:   EventRateLimitTriggered,
		Details: map[string]any{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (l *AuditLogger) Sync() error {
	return l.zapLogger.Sync()
}

// MaskEmail masks an email for logging, "j***@example.com".
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue returns the first 16 hex chars of the SHA-256 of value.
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}
