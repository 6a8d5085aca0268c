package domain

type CtxKey string

// Keys for values stored on the gin context.
const (
	KeyIdentity  CtxKey = "Identity"
	KeySession   CtxKey = "Session"
	KeyRequestID CtxKey = "RequestID"
	KeyCSRFToken CtxKey = "CSRFToken"
)
