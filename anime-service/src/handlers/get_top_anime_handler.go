package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) GetTopAnime(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	page, limit := pageQuery(c)

	h.logger.InfoContext(ctx, "Top anime requested",
		slog.String("component", component),
		slog.String("operation", "get_top_anime"),
		slog.Int("page", page))

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("page", page))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.GetTopAnime(ctx, page, limit))
}
