package http

import (
	"github.com/NeuralTrust/SnippetGate/pkg/handlers/http/response"
	"github.com/NeuralTrust/SnippetGate/pkg/infra/scanner"
	"github.com/gofiber/fiber/v2"
)

type listRulesHandler struct {
	scanner *scanner.Scanner
}

func NewListRulesHandler(s *scanner.Scanner) Handler {
	return &listRulesHandler{scanner: s}
}

// Handle @Summary List the scanner catalogue
// @Description Generic rules followed by language-specific rules. Pattern text is not returned.
// @Tags Admin
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Success 200 {object} response.ListRulesOutput "Rule catalogue"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /api/v1/admin/rules [get]
func (h *listRulesHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(response.ListRulesOutput{
		WhitelistMode: h.scanner.WhitelistMode(),
		Languages:     h.scanner.Languages(),
		Rules:         response.Rules(h.scanner.Rules()),
	})
}
