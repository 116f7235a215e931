package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) SearchAnime(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return invalidParam("q", "search query is required")
	}
	page, limit := pageQuery(c)

	h.logger.InfoContext(ctx, "Anime search requested",
		slog.String("component", component),
		slog.String("operation", "search_anime"),
		slog.String("query", query),
		slog.Int("page", page))

	ctx, span := commontrace.StartSpan(ctx, attribute.String("search.query", query), attribute.Int("page", page))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.SearchAnime(ctx, query, page, limit))
}
