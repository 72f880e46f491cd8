package common

import "time"

const (
	SnippetCacheTTL = 1 * time.Hour

	UserIDHeader         = "X-User-ID"
	RequestIDHeader      = "X-Request-ID"
	OverrideHeader       = "X-Security-Override"
	RetryAfterHeader     = "Retry-After"
	RateLimitLimitHeader = "X-RateLimit-Limit"
	RateLimitRemaining   = "X-RateLimit-Remaining"

	UserKeyPrefix = "user:"
	IPKeyPrefix   = "ip:"
)

// ClientIPHeaders are consulted in order before falling back to the socket
// address.
var ClientIPHeaders = []string{
	"X-Real-IP",
	"X-Forwarded-For",
	"True-Client-IP",
	"CF-Connecting-IP",
}
