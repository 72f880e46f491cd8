package http

import (
	"errors"
	"strconv"

	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/httpx"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/ratelimit"
	"github.com/gofiber/fiber/v2"
)

// readBody returns the request body with any Content-Encoding undone. The
// raw body is used so that fiber does not decode it a second time.
func readBody(c *fiber.Ctx) ([]byte, error) {
	body, _, err := httpx.DecodeChain(c.Get(fiber.HeaderContentEncoding), c.Request().Body(), httpx.DefaultMaxDecodedSize)
	return body, err
}

// bodyError maps a decode failure to its status and message.
func bodyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, httpx.ErrUnsupportedEncoding):
		return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, httpx.ErrDecodedTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "request body too large"})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
}

func setRateLimitHeaders(c *fiber.Ctx, d ratelimit.Decision) {
	c.Set(common.RateLimitLimitHeader, strconv.Itoa(d.Limit))
	c.Set(common.RateLimitRemaining, strconv.Itoa(d.Remaining))
	if !d.Allowed {
		c.Set(common.RetryAfterHeader, strconv.FormatInt(retryAfterSeconds(d), 10))
	}
}

// retryAfterSeconds rounds up so that a client waiting that long is admitted.
func retryAfterSeconds(d ratelimit.Decision) int64 {
	secs := int64((d.RetryAfter + 999_999_999) / 1_000_000_000)
	return max(secs, 1)
}
