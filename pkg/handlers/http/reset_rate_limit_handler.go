package http

import (
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type resetRateLimitHandler struct {
	logger  *logrus.Logger
	limiter *ratelimit.Limiter
}

func NewResetRateLimitHandler(logger *logrus.Logger, limiter *ratelimit.Limiter) Handler {
	return &resetRateLimitHandler{
		logger:  logger,
		limiter: limiter,
	}
}

// Handle @Summary Reset an identity's rate-limit window
// @Tags Admin
// @Param Authorization header string true "Authorization token"
// @Param key path string true "Identity key, e.g. user:42 or ip:10.0.0.1"
// @Success 204 "Window cleared"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/v1/admin/rate-limits/{key} [delete]
func (h *resetRateLimitHandler) Handle(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required"})
	}
	if err := h.limiter.Reset(c.UserContext(), key); err != nil {
		h.logger.WithError(err).WithField("key", key).Error("failed to reset rate limit")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to reset rate limit"})
	}
	h.logger.WithField("key", key).Info("rate limit window reset")
	return c.SendStatus(fiber.StatusNoContent)
}
