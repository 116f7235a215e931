package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) SearchAnime(ctx context.Context, query string, page, limit int) (result apicall.Result[models.PaginatedResponse[models.Anime]]) {
	page, limit = pageDefaults(page, limit)
	ctx, span := commontrace.StartSpan(ctx, attribute.String("anime.search", query), attribute.Int("page", page))
	defer endSpan(span, &result)

	s.logger.InfoContext(ctx, "Searching anime",
		slog.String("component", "anime_service"),
		slog.String("query", query),
		slog.Int("page", page))

	params := models.SearchParams{Q: query, Page: page, Limit: limit}
	return fetch[models.PaginatedResponse[models.Anime]](ctx, s, "anime", params.Query())
}
