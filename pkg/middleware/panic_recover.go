package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// panicRecoverMiddleware turns a handler panic into a 500 and logs the stack.
type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = m.handlePanic(c, r)
			}
		}()
		return c.Next()
	}
}

func (m *panicRecoverMiddleware) handlePanic(c *fiber.Ctx, r interface{}) error {
	m.logger.WithFields(logrus.Fields{
		"request_id": RequestID(c),
		"route":      c.Method() + " " + c.Path(),
		"stack":      string(debug.Stack()),
	}).Errorf("handler panicked: %s", fmt.Sprint(r))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
