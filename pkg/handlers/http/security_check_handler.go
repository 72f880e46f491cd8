package http

import (
	"github.com/NeuralTrust/SnippetGate/pkg/app/submission"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/request"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type securityCheckHandler struct {
	logger  *logrus.Logger
	checker submission.Checker
	expose  bool
}

func NewSecurityCheckHandler(logger *logrus.Logger, checker submission.Checker, exposePatterns bool) Handler {
	return &securityCheckHandler{
		logger:  logger,
		checker: checker,
		expose:  exposePatterns,
	}
}

// Handle @Summary Check a snippet
// @Description Scans title and description for profanity and the code for malicious patterns. Nothing is stored and no rate limit is consumed.
// @Tags Security
// @Accept json
// @Produce json
// @Param request body security.ScanRequest true "Snippet to check"
// @Success 200 {object} response.CheckOutput "Security check result"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Router /api/v1/security/check [post]
func (h *securityCheckHandler) Handle(c *fiber.Ctx) error {
	body, err := readBody(c)
	if err != nil {
		return bodyError(c, err)
	}
	req, err := request.ParseScanRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	result := h.checker.Check(req)
	return c.Status(fiber.StatusOK).JSON(response.Check(result, h.expose))
}
