package store

import (
	"context"
	"net/http"
	"sync"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
)

type listCall struct {
	kind   string
	params models.SearchParams
}

// fakeService answers every list call with listResult and records the calls.
type fakeService struct {
	mu           sync.Mutex
	calls        []listCall
	listResult   apicall.Result[models.PaginatedResponse[models.Anime]]
	detailResult apicall.Result[models.AnimeDetailResponse]
}

func newFakeService() *fakeService {
	return &fakeService{
		listResult:   apicall.Ok(pageOf(1, true, false, models.Anime{MalID: 1, Title: "Cowboy Bebop"}), http.StatusOK),
		detailResult: apicall.Ok(models.AnimeDetailResponse{Data: models.Anime{MalID: 7, Title: "Trigun"}}, http.StatusOK),
	}
}

func pageOf(current int, hasNext, hasPrev bool, animes ...models.Anime) models.PaginatedResponse[models.Anime] {
	return models.PaginatedResponse[models.Anime]{
		Data: animes,
		Pagination: models.PaginationMeta{
			CurrentPage:     current,
			HasNextPage:     hasNext,
			HasPreviousPage: hasPrev,
			Items:           models.PaginationItems{Total: 120},
		},
	}
}

func (f *fakeService) record(kind string, params models.SearchParams) apicall.Result[models.PaginatedResponse[models.Anime]] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listCall{kind: kind, params: params})
	return f.listResult
}

func (f *fakeService) lastCall() listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return listCall{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeService) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeService) GetAnimeList(_ context.Context, params models.SearchParams) apicall.Result[models.PaginatedResponse[models.Anime]] {
	return f.record("list", params)
}

func (f *fakeService) GetAnimeByID(context.Context, int) apicall.Result[models.AnimeDetailResponse] {
	return f.detailResult
}

func (f *fakeService) GetTopAnime(_ context.Context, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]] {
	return f.record("top", models.SearchParams{Page: page, Limit: limit})
}

func (f *fakeService) GetSeasonalAnime(_ context.Context, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]] {
	return f.record("seasonal", models.SearchParams{Page: page, Limit: limit})
}

func (f *fakeService) GetAnimeRecommendations(context.Context, int) apicall.Result[models.PaginatedResponse[models.AnimeRecommendation]] {
	return apicall.Ok(models.PaginatedResponse[models.AnimeRecommendation]{}, http.StatusOK)
}

func (f *fakeService) GetAnimeStats(context.Context, int) apicall.Result[models.AnimeStatsResponse] {
	return apicall.Ok(models.AnimeStatsResponse{}, http.StatusOK)
}

func (f *fakeService) SearchAnime(_ context.Context, query string, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]] {
	return f.record("search", models.SearchParams{Q: query, Page: page, Limit: limit})
}

func (f *fakeService) GetAnimeByGenre(_ context.Context, genreID, page, limit int) apicall.Result[models.PaginatedResponse[models.Anime]] {
	return f.record("genre", models.SearchParams{Page: page, Limit: limit})
}

func (f *fakeService) GetAnimeCharacters(context.Context, int) apicall.Result[models.AnimeCharactersResponse] {
	return apicall.Ok(models.AnimeCharactersResponse{}, http.StatusOK)
}

func (f *fakeService) GetAnimeDetailBundle(context.Context, int) apicall.Result[models.AnimeDetailBundle] {
	return apicall.Ok(models.AnimeDetailBundle{}, http.StatusOK)
}

func businessFailure(reason string, status int) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeUnknown, reason, status, "server said no")
}

type memoryFavorites struct {
	mu      sync.Mutex
	data    map[string][]models.Anime
	loadErr *apierrors.AppError
	saveErr *apierrors.AppError
	saves   int
}

func newMemoryFavorites() *memoryFavorites {
	return &memoryFavorites{data: map[string][]models.Anime{}}
}

func (m *memoryFavorites) Load(_ context.Context, userID string) ([]models.Anime, *apierrors.AppError) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]models.Anime{}, m.data[userID]...), nil
}

func (m *memoryFavorites) Save(_ context.Context, userID string, favorites []models.Anime) *apierrors.AppError {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[userID] = favorites
	return nil
}
