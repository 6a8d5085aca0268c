package security

import "go.uber.org/zap/zapcore"

// Severity is derived from the event type, never supplied by callers.
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityWARN   Severity = "WARN"
	SeverityHIGH   Severity = "HIGH"
)

// EventSeverityMap defines the fixed severity for each event type.
var EventSeverityMap = map[EventType]Severity{
	EventLoginSuccess: SeverityINFO,
	EventLogout:       SeverityINFO,

	EventCandidateCreated: SeverityMEDIUM,
	EventCandidateUpdated: SeverityMEDIUM,
	EventJobCreated:       SeverityMEDIUM,
	EventJobUpdated:       SeverityMEDIUM,
	EventJobDeleted:       SeverityMEDIUM,
	EventInterviewCreated: SeverityMEDIUM,
	EventInterviewUpdated: SeverityMEDIUM,
	EventInterviewDeleted: SeverityMEDIUM,
	EventOfferCreated:     SeverityMEDIUM,
	EventOfferUpdated:     SeverityMEDIUM,
	EventOfferDeleted:     SeverityMEDIUM,
	EventCVUploaded:       SeverityMEDIUM,

	EventLoginFailed:        SeverityWARN,
	EventRateLimitTriggered: SeverityWARN,
	EventValidationFailed:   SeverityWARN,
	EventSessionExpired:     SeverityWARN,

	EventCandidateDeleted:   SeverityHIGH,
	EventUserCreated:        SeverityHIGH,
	EventUserUpdated:        SeverityHIGH,
	EventUnauthorizedAccess: SeverityHIGH,
	EventCSRFViolation:      SeverityHIGH,
	EventUploadRejected:     SeverityHIGH,
}

// GetSeverity returns the severity for an event type, MEDIUM when unmapped.
func GetSeverity(eventType EventType) Severity {
	if severity, ok := EventSeverityMap[eventType]; ok {
		return severity
	}
	return SeverityMEDIUM
}

func (s Severity) zapLevel() zapcore.Level {
	switch s {
	case SeverityINFO, SeverityMEDIUM:
		return zapcore.InfoLevel
	case SeverityWARN:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
