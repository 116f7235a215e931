package services

import (
	"context"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) GetTopAnime(ctx context.Context, page, limit int) (result apicall.Result[models.PaginatedResponse[models.Anime]]) {
	page, limit = pageDefaults(page, limit)
	ctx, span := commontrace.StartSpan(ctx, attribute.Int("page", page), attribute.Int("limit", limit))
	defer endSpan(span, &result)

	params := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	return fetch[models.PaginatedResponse[models.Anime]](ctx, s, "top/anime", params)
}
