package middleware

import (
	"context"

	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type requestIDMiddleware struct {
	uuidProvider func() uuid.UUID
}

func NewRequestIDMiddleware(uuidProvider func() uuid.UUID) Middleware {
	if uuidProvider == nil {
		uuidProvider = uuid.New
	}
	return &requestIDMiddleware{uuidProvider: uuidProvider}
}

// Middleware keeps a caller supplied X-Request-ID and generates one otherwise.
func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(common.RequestIDHeader)
		if id == "" {
			id = m.uuidProvider().String()
		}
		c.Locals(common.RequestIDKey, id)
		c.SetUserContext(context.WithValue(c.UserContext(), common.RequestIDKey, id))
		c.Set(common.RequestIDHeader, id)
		return c.Next()
	}
}

// RequestID returns the id assigned to the request, if any.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(common.RequestIDKey).(string)
	return id
}
