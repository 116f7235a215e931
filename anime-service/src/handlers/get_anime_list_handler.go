package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// GetAnimeList passes the query string filters through to the catalog.
func (h *AnimeHandler) GetAnimeList(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()

	var params models.SearchParams
	if parseErr := c.QueryParser(&params); parseErr != nil {
		h.logger.WarnContext(ctx, "Request rejected: invalid query parameters",
			slog.String("component", component),
			slog.String("error", parseErr.Error()),
			slog.String("operation", "get_anime_list"))
		return invalidBody(parseErr)
	}

	h.logger.InfoContext(ctx, "Anime list requested",
		slog.String("component", component),
		slog.String("operation", "get_anime_list"),
		slog.String("query", params.Query().Encode()))

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("page", params.Page))
	defer commontrace.EndSpan(span, &err, nil)

	return writeResult(c, h.service.GetAnimeList(ctx, params))
}
