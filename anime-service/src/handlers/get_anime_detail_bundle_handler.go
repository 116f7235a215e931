package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// GetAnimeDetailBundle answers with the anime, its characters and its
// statistics in one response.
func (h *AnimeHandler) GetAnimeDetailBundle(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	id, appErr := animeID(c)
	if appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "Full anime details requested",
		slog.String("component", component),
		slog.String("operation", "get_anime_detail_bundle"),
		slog.Int("anime_id", id))

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", id))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.GetAnimeDetailBundle(ctx, id))
}
