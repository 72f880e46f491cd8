package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Security
	SecurityCheckHandler      Handler
	BatchSecurityCheckHandler Handler
	RateLimitCheckHandler     Handler

	// Snippets
	CreateSnippetHandler Handler
	GetSnippetHandler    Handler

	// Admin
	ListRulesHandler      Handler
	ResetRateLimitHandler Handler

	GetVersionHandler Handler
}

// Complete reports whether every route has a handler.
func (t *HandlerTransport) Complete() bool {
	for _, h := range []Handler{
		t.SecurityCheckHandler,
		t.BatchSecurityCheckHandler,
		t.RateLimitCheckHandler,
		t.CreateSnippetHandler,
		t.GetSnippetHandler,
		t.ListRulesHandler,
		t.ResetRateLimitHandler,
		t.GetVersionHandler,
	} {
		if h == nil {
			return false
		}
	}
	return true
}
