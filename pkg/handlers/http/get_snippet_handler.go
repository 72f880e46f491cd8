package http

import (
	"github.com/NeuralTrust/SnippetGate/pkg/domain"
	"github.com/NeuralTrust/SnippetGate/pkg/domain/snippet"
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type getSnippetHandler struct {
	logger *logrus.Logger
	repo   snippet.Repository
	expose bool
}

func NewGetSnippetHandler(logger *logrus.Logger, repo snippet.Repository, exposePatterns bool) Handler {
	return &getSnippetHandler{
		logger: logger,
		repo:   repo,
		expose: exposePatterns,
	}
}

// Handle @Summary Retrieve a snippet by ID
// @Tags Snippets
// @Produce json
// @Param snippet_id path string true "Snippet ID"
// @Success 200 {object} response.SnippetOutput "Snippet"
// @Failure 400 {object} map[string]interface{} "Invalid snippet ID"
// @Failure 404 {object} map[string]interface{} "Snippet not found"
// @Router /api/v1/snippets/{snippet_id} [get]
func (h *getSnippetHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("snippet_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid snippet ID"})
	}

	entity, err := h.repo.GetByID(c.UserContext(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "snippet not found"})
		}
		h.logger.WithError(err).WithField("snippet_id", id).Error("failed to load snippet")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load snippet"})
	}
	return c.Status(fiber.StatusOK).JSON(response.Snippet(entity, h.expose))
}
