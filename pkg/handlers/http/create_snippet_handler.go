package http

import (
	"errors"
	"strings"

	"github.com/NeuralTrust/SnippetGate/pkg/app/submission"
	"github.com/NeuralTrust/SnippetGate/pkg/common"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/security"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/request"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/NeuralTrust/SnippetGate/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type createSnippetHandler struct {
	logger     *logrus.Logger
	gate       submission.Gate
	identities *utils.IdentityResolver
	expose     bool
}

func NewCreateSnippetHandler(
	logger *logrus.Logger,
	gate submission.Gate,
	identities *utils.IdentityResolver,
	exposePatterns bool,
) Handler {
	return &createSnippetHandler{
		logger:     logger,
		gate:       gate,
		identities: identities,
		expose:     exposePatterns,
	}
}

// Handle @Summary Submit a snippet
// @Description Checks the snippet, applies the override policy and the caller's rate limit, then stores it.
// @Tags Snippets
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Authenticated user id, set by the session layer"
// @Param X-Security-Override header bool false "Accept low or medium risk code"
// @Param request body request.CreateSnippetRequest true "Snippet"
// @Success 201 {object} response.SnippetOutput "Stored snippet"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 422 {object} response.MaliciousOutput "Content rejected"
// @Failure 429 {object} map[string]interface{} "Too many requests"
// @Router /api/v1/snippets [post]
func (h *createSnippetHandler) Handle(c *fiber.Ctx) error {
	body, err := readBody(c)
	if err != nil {
		return bodyError(c, err)
	}
	req, err := request.ParseCreateSnippetRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	header := func(name string) string { return c.Get(name) }
	in := submission.SubmitInput{
		Request:   req.ScanRequest,
		Identity:  h.identities.Resolve(header, c.Context().RemoteAddr().String()),
		Override:  req.Override || strings.EqualFold(c.Get(common.OverrideHeader), "true"),
		UserAgent: utils.ParseUserAgent(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage)),
	}

	out, err := h.gate.Submit(c.UserContext(), in)
	if err == nil {
		setRateLimitHeaders(c, out.RateLimit)
		return c.Status(fiber.StatusCreated).JSON(response.Snippet(out.Snippet, h.expose))
	}

	var (
		profanityErr *security.ProfanityError
		maliciousErr *security.MaliciousContentError
		limitedErr   *security.RateLimitedError
	)
	switch {
	case errors.As(err, &profanityErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(response.Profanity(profanityErr))
	case errors.As(err, &maliciousErr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(response.Malicious(maliciousErr, h.expose))
	case errors.As(err, &limitedErr):
		setRateLimitHeaders(c, out.RateLimit)
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":               "too many requests",
			"retry_after_seconds": retryAfterSeconds(out.RateLimit),
		})
	default:
		h.logger.WithError(err).WithField("identity", in.Identity.Key).Error("failed to submit snippet")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit snippet"})
	}
}
