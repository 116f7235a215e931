package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/anime-service/src/auth"
	"github.com/narender/anime-explorer/common/apirequests"
)

// ValidateRegisterSection checks one step of the registration form. The
// body is the whole form; only the fields of the section are reported.
func (h *AnimeHandler) ValidateRegisterSection(c *fiber.Ctx) error {
	ctx := c.UserContext()
	section := c.Params("section")

	var form apirequests.RegisterRequest
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return invalidBody(parseErr)
	}

	fieldErrors, appErr := auth.ValidateSection(section, form)
	if appErr != nil {
		return appErr
	}

	h.logger.DebugContext(ctx, "Registration section validated",
		slog.String("component", component),
		slog.String("section", section),
		slog.Int("field_errors", len(fieldErrors)))

	return reply(c, http.StatusOK, fiber.Map{
		"section": section,
		"valid":   len(fieldErrors) == 0,
		"errors":  fieldErrors,
	})
}
