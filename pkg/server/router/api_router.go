package router

import (
	"errors"

	_ "github.com/NeuralTrust/SnippetGate/docs"
	handlers "github.com/NeuralTrust/SnippetGate/pkg/handlers/http"
	"github.com/NeuralTrust/SnippetGate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

var (
	ErrInvalidHandlerTransport = errors.New("invalid handler transport")
	ErrMissingAdminAuth        = errors.New("admin routes require an auth middleware")
)

type apiRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    *handlers.HandlerTransport
}

func NewAPIRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport *handlers.HandlerTransport,
) ServerRouter {
	return &apiRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *apiRouter) BuildRoutes(router *fiber.App) error {
	h := r.handlerTransport
	if h == nil || !h.Complete() {
		return ErrInvalidHandlerTransport
	}
	mw := r.middlewareTransport
	if mw == nil || mw.AdminAuthMiddleware == nil {
		return ErrMissingAdminAuth
	}

	if global := mw.Global(); len(global) > 0 {
		router.Use(global...)
	}

	router.Get("/docs/*", swagger.HandlerDefault)
	router.Get("/version", h.GetVersionHandler.Handle)

	v1 := router.Group("/api/v1")
	{
		if mw.SecurityHeadersMiddleware != nil {
			v1.Use(mw.SecurityHeadersMiddleware.Middleware())
		}

		security := v1.Group("/security")
		{
			security.Post("/check", h.SecurityCheckHandler.Handle)
			security.Post("/check/batch", h.BatchSecurityCheckHandler.Handle)
		}

		snippets := v1.Group("/snippets")
		{
			snippets.Post("", h.CreateSnippetHandler.Handle)
			snippets.Get("/:snippet_id", h.GetSnippetHandler.Handle)
		}

		admin := v1.Group("/admin")
		{
			admin.Use(mw.AdminAuthMiddleware.Middleware())
			admin.Get("/rules", h.ListRulesHandler.Handle)
			admin.Post("/rate-limits/check", h.RateLimitCheckHandler.Handle)
			admin.Delete("/rate-limits/:key", h.ResetRateLimitHandler.Handle)
		}
	}
	return nil
}
