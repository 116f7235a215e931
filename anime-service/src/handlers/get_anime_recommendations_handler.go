package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) GetAnimeRecommendations(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	id, appErr := animeID(c)
	if appErr != nil {
		return appErr
	}

	h.logger.InfoContext(ctx, "Anime recommendations requested",
		slog.String("component", component),
		slog.String("operation", "get_anime_recommendations"),
		slog.Int("anime_id", id))

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", id))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.GetAnimeRecommendations(ctx, id))
}
