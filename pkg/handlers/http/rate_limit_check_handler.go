package http

import (
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/request"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type rateLimitCheckHandler struct {
	logger  *logrus.Logger
	limiter *ratelimit.Limiter
}

func NewRateLimitCheckHandler(logger *logrus.Logger, limiter *ratelimit.Limiter) Handler {
	return &rateLimitCheckHandler{
		logger:  logger,
		limiter: limiter,
	}
}

// Handle @Summary Consume one request from an identity's window
// @Description Applies the fixed-window limit to the given key. An allowed check counts against the window.
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Authorization token"
// @Param request body request.RateLimitCheckRequest true "Identity to check"
// @Success 200 {object} response.RateLimitOutput "Limiter decision"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 503 {object} map[string]interface{} "Limiter unavailable"
// @Router /api/v1/admin/rate-limits/check [post]
func (h *rateLimitCheckHandler) Handle(c *fiber.Ctx) error {
	body, err := readBody(c)
	if err != nil {
		return bodyError(c, err)
	}
	req, err := request.ParseRateLimitCheckRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	d, err := h.limiter.CheckRateLimit(c.UserContext(), req.Key, req.IsAuthenticated)
	if err != nil {
		h.logger.WithError(err).WithField("key", req.Key).Error("rate limit check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "rate limiter unavailable"})
	}

	setRateLimitHeaders(c, d)
	out := response.RateLimitOutput{Allowed: d.Allowed, Remaining: d.Remaining, Limit: d.Limit}
	if !d.Allowed {
		secs := retryAfterSeconds(d)
		out.RetryAfterSeconds = &secs
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
