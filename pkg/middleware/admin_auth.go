package middleware

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

type adminAuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

// Middleware admits bearer tokens carrying the admin role.
func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization required"})
		}
		tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || strings.TrimSpace(tokenString) == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := m.jwtManager.ValidateToken(strings.TrimSpace(tokenString))
		if err != nil {
			m.logger.WithError(err).WithField("request_id", RequestID(ctx)).Debug("admin token rejected")
			if errors.Is(err, jwt.ErrExpiredToken) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token expired"})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		if claims.Role != jwt.RoleAdmin {
			m.logger.WithField("subject", claims.Subject).Warn("non-admin token used on admin route")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "admin role required"})
		}

		ctx.Locals(common.ClaimsKey, claims)
		return ctx.Next()
	}
}
