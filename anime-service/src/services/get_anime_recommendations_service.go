package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) GetAnimeRecommendations(ctx context.Context, id int) (result apicall.Result[models.PaginatedResponse[models.AnimeRecommendation]]) {
	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", id))
	defer endSpan(span, &result)

	if id <= 0 {
		return apicall.Fail[models.PaginatedResponse[models.AnimeRecommendation]](invalidID(id))
	}
	return fetch[models.PaginatedResponse[models.AnimeRecommendation]](ctx, s, fmt.Sprintf("anime/%d/recommendations", id), nil)
}
