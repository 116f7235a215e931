package services

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

func (s *animeService) GetAnimeByID(ctx context.Context, id int) (result apicall.Result[models.AnimeDetailResponse]) {
	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", id))
	defer endSpan(span, &result)

	if id <= 0 {
		return apicall.Fail[models.AnimeDetailResponse](invalidID(id))
	}

	s.logger.DebugContext(ctx, "Fetching anime details",
		slog.String("component", "anime_service"),
		slog.Int("anime_id", id))

	return fetch[models.AnimeDetailResponse](ctx, s, fmt.Sprintf("anime/%d", id), nil)
}
