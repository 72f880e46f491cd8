package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	RequestIDMiddleware       Middleware
	PanicRecoverMiddleware    Middleware
	SecurityHeadersMiddleware Middleware
	MetricsMiddleware         Middleware
	AdminAuthMiddleware       Middleware
}

// Global returns the middlewares applied to every route, outermost first.
func (t *Transport) Global() []interface{} {
	var out []interface{}
	for _, m := range []Middleware{t.RequestIDMiddleware, t.PanicRecoverMiddleware, t.MetricsMiddleware} {
		if m != nil {
			out = append(out, m.Middleware())
		}
	}
	return out
}
