package services

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) GetAnimeList(ctx context.Context, params models.SearchParams) (result apicall.Result[models.PaginatedResponse[models.Anime]]) {
	query := params.Query()
	ctx, span := commontrace.StartSpan(ctx, attribute.String("anime.query", query.Encode()))
	defer endSpan(span, &result)

	s.logger.DebugContext(ctx, "Fetching anime list",
		slog.String("component", "anime_service"),
		slog.String("query", query.Encode()))

	return fetch[models.PaginatedResponse[models.Anime]](ctx, s, "anime", query)
}
