package services

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/either"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// GetAnimeDetailBundle loads details, characters and statistics in parallel.
// When several calls fail, the failure of the earliest one in that order wins.
func (s *animeService) GetAnimeDetailBundle(ctx context.Context, id int) (result apicall.Result[models.AnimeDetailBundle]) {
	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", id))
	defer endSpan(span, &result)

	if id <= 0 {
		return apicall.Fail[models.AnimeDetailBundle](invalidID(id))
	}

	var (
		wg         conc.WaitGroup
		detail     apicall.Result[models.AnimeDetailResponse]
		characters apicall.Result[models.AnimeCharactersResponse]
		stats      apicall.Result[models.AnimeStatsResponse]
	)
	wg.Go(func() { detail = s.GetAnimeByID(ctx, id) })
	wg.Go(func() { characters = s.GetAnimeCharacters(ctx, id) })
	wg.Go(func() { stats = s.GetAnimeStats(ctx, id) })
	if recovered := wg.WaitAndRecover(); recovered != nil {
		return apicall.Fail[models.AnimeDetailBundle](apierrors.NewUnexpectedError(recovered.AsError()))
	}

	s.logger.DebugContext(ctx, "Detail bundle calls finished",
		slog.String("component", "anime_service"),
		slog.Int("anime_id", id),
		slog.Bool("detail_ok", detail.IsRight()),
		slog.Bool("characters_ok", characters.IsRight()),
		slog.Bool("stats_ok", stats.IsRight()))

	return either.FlatMap(detail, func(d apicall.Success[models.AnimeDetailResponse]) apicall.Result[models.AnimeDetailBundle] {
		return either.FlatMap(characters, func(c apicall.Success[models.AnimeCharactersResponse]) apicall.Result[models.AnimeDetailBundle] {
			return either.Map(stats, func(st apicall.Success[models.AnimeStatsResponse]) apicall.Success[models.AnimeDetailBundle] {
				return apicall.Success[models.AnimeDetailBundle]{
					Data: models.AnimeDetailBundle{
						Anime:      d.Data.Data,
						Characters: c.Data.Data,
						Stats:      st.Data.Data,
					},
					Status: d.Status,
				}
			})
		})
	})
}
