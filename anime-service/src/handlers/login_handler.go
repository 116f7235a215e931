package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/common/apirequests"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) Login(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()

	var req apirequests.LoginRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		h.logger.WarnContext(ctx, "Request rejected: invalid login format",
			slog.String("component", component),
			slog.String("error", parseErr.Error()),
			slog.String("operation", "login"))
		return invalidBody(parseErr)
	}

	ctx, span := commontrace.StartSpan(ctx)
	defer commontrace.EndSpan(span, &err, nil)

	resp, appErr := h.auth.Login(ctx, req)
	if appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "User logged in",
		slog.String("component", component),
		slog.String("operation", "login"),
		slog.String("user_id", resp.User.ID))
	return reply(c, http.StatusOK, resp)
}
