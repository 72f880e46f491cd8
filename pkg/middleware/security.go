package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// SecurityHeaders are the response headers set on every API response.
type SecurityHeaders struct {
	FrameOptions          string
	ContentTypeNosniff    bool
	ReferrerPolicy        string
	ContentSecurityPolicy string
}

func DefaultSecurityHeaders() SecurityHeaders {
	return SecurityHeaders{
		FrameOptions:          "DENY",
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
	}
}

type securityMiddleware struct {
	headers SecurityHeaders
}

func NewSecurityMiddleware(headers SecurityHeaders) Middleware {
	return &securityMiddleware{headers: headers}
}

func (m *securityMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.headers.FrameOptions != "" {
			c.Set(fiber.HeaderXFrameOptions, m.headers.FrameOptions)
		}
		if m.headers.ContentTypeNosniff {
			c.Set(fiber.HeaderXContentTypeOptions, "nosniff")
		}
		if m.headers.ReferrerPolicy != "" {
			c.Set(fiber.HeaderReferrerPolicy, m.headers.ReferrerPolicy)
		}
		if m.headers.ContentSecurityPolicy != "" {
			c.Set(fiber.HeaderContentSecurityPolicy, m.headers.ContentSecurityPolicy)
		}
		return c.Next()
	}
}
