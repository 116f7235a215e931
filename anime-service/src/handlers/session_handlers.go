package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/common/apiresponses"
)

// Me returns the user of the current session.
func (h *AnimeHandler) Me(c *fiber.Ctx) error {
	session, _ := sessionOf(c)
	return reply(c, http.StatusOK, session.User)
}

// Logout closes the current session.
func (h *AnimeHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session, _ := sessionOf(c)

	if appErr := h.auth.Logout(ctx, session.Token); appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "User logged out",
		slog.String("component", component),
		slog.String("user_id", session.User.ID))
	return reply(c, http.StatusOK, apiresponses.ActionConfirmation{Message: "Logged out"})
}
