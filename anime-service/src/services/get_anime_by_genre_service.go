package services

import (
	"context"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) GetAnimeByGenre(ctx context.Context, genreID, page, limit int) (result apicall.Result[models.PaginatedResponse[models.Anime]]) {
	page, limit = pageDefaults(page, limit)
	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.genre_id", genreID), attribute.Int("page", page))
	defer endSpan(span, &result)

	params := models.SearchParams{Genres: strconv.Itoa(genreID), Page: page, Limit: limit}
	return fetch[models.PaginatedResponse[models.Anime]](ctx, s, "anime", params.Query())
}
