package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/common/apirequests"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) Register(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()

	var req apirequests.RegisterRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		h.logger.WarnContext(ctx, "Request rejected: invalid registration format",
			slog.String("component", component),
			slog.String("error", parseErr.Error()),
			slog.String("operation", "register"))
		return invalidBody(parseErr)
	}

	ctx, span := commontrace.StartSpan(ctx)
	defer commontrace.EndSpan(span, &err, nil)

	resp, appErr := h.auth.Register(ctx, req)
	if appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "User registered",
		slog.String("component", component),
		slog.String("operation", "register"),
		slog.String("user_id", resp.User.ID))
	return reply(c, http.StatusCreated, resp)
}
