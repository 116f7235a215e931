package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (h *AnimeHandler) GetAnimeByGenre(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()
	genreID, parseErr := c.ParamsInt("genreId")
	if parseErr != nil || genreID <= 0 {
		return invalidParam("genreId", c.Params("genreId"))
	}
	page, limit := pageQuery(c)

	h.logger.InfoContext(ctx, "Anime by genre requested",
		slog.String("component", component),
		slog.String("operation", "get_anime_by_genre"),
		slog.Int("genre_id", genreID),
		slog.Int("page", page))

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("genre.id", genreID), attribute.Int("page", page))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.GetAnimeByGenre(ctx, genreID, page, limit))
}
