package common

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	IdentityKey  contextKey = "identity"
	ClaimsKey    contextKey = "claims"
)
