package services

import (
	"context"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/trace"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/httpclient"
	commonlog "github.com/narender/anime-explorer/common/log"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// AnimeService is the client of the anime catalog API. Every call returns an
// apicall.Result and never panics.
type AnimeService interface {
	GetAnimeList(ctx context.Context, params models.SearchParams) apicall.Result[models.PaginatedResponse[models.Anime]]
	GetAnimeByID(ctx context.Context, id int) apicall.Result[models.AnimeDetailResponse]
	GetTopAnime(ctx context.Context, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]]
	GetSeasonalAnime(ctx context.Context, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]]
	GetAnimeRecommendations(ctx context.Context, id int) apicall.Result[models.PaginatedResponse[models.AnimeRecommendation]]
	GetAnimeStats(ctx context.Context, id int) apicall.Result[models.AnimeStatsResponse]
	SearchAnime(ctx context.Context, query string, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]]
	GetAnimeByGenre(ctx context.Context, genreID, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]]
	GetAnimeCharacters(ctx context.Context, id int) apicall.Result[models.AnimeCharactersResponse]
	GetAnimeDetailBundle(ctx context.Context, id int) apicall.Result[models.AnimeDetailBundle]
}

type animeService struct {
	client    *httpclient.Client
	logger    *slog.Logger
	apiLogger *commonlog.APILogger
}

// NewAnimeService creates the catalog client on top of client.
func NewAnimeService(client *httpclient.Client, logger *slog.Logger) AnimeService {
	if logger == nil {
		logger = commonlog.FromContext(context.Background())
	}
	return &animeService{
		client:    client,
		logger:    logger,
		apiLogger: commonlog.NewAPILogger(logger),
	}
}

func fetch[T any](ctx context.Context, s *animeService, path string, params url.Values) apicall.Result[T] {
	return apicall.ExecuteRequest(ctx, s.apiLogger, func(ctx context.Context) (*apicall.Response[T], error) {
		return httpclient.Get[T](ctx, s.client, path, params)
	})
}

func endSpan[T any](span trace.Span, result *apicall.Result[T]) {
	var err error
	if failure, ok := result.LeftValue(); ok && failure != nil {
		err = failure
	}
	commontrace.EndSpan(span, &err, nil)
}

func pageDefaults(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = models.DefaultPageLimit
	}
	return page, limit
}
