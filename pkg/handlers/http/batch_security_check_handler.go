package http

import (
	"errors"

	"github.com/NeuralTrust/SnippetGate/pkg/app/submission"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/request"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type batchSecurityCheckHandler struct {
	logger  *logrus.Logger
	checker submission.Checker
	expose  bool
}

func NewBatchSecurityCheckHandler(logger *logrus.Logger, checker submission.Checker, exposePatterns bool) Handler {
	return &batchSecurityCheckHandler{
		logger:  logger,
		checker: checker,
		expose:  exposePatterns,
	}
}

// Handle @Summary Check several snippets
// @Description Runs the security check over every request concurrently. Results keep the request order.
// @Tags Security
// @Accept json
// @Produce json
// @Param request body request.BatchCheckRequest true "Snippets to check"
// @Success 200 {object} response.BatchCheckOutput "Security check results"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 413 {object} map[string]interface{} "Batch too large"
// @Router /api/v1/security/check/batch [post]
func (h *batchSecurityCheckHandler) Handle(c *fiber.Ctx) error {
	body, err := readBody(c)
	if err != nil {
		return bodyError(c, err)
	}
	req, err := request.ParseBatchCheckRequest(body)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	results, err := h.checker.CheckBatch(c.UserContext(), req.Requests)
	switch {
	case errors.Is(err, submission.ErrBatchTooLarge):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, submission.ErrEmptyBatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		h.logger.WithError(err).Error("batch security check failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "batch check failed"})
	}

	out := response.BatchCheckOutput{Results: make([]response.CheckOutput, 0, len(results))}
	for _, res := range results {
		out.Results = append(out.Results, response.Check(res, h.expose))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
