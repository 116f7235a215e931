package store

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/anime-service/src/repositories"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/db"
)

func newStore(t *testing.T) (*AnimeStore, *fakeService, *memoryFavorites) {
	t.Helper()
	svc := newFakeService()
	favs := newMemoryFavorites()
	return NewAnimeStore(context.Background(), "1", svc, favs, nil), svc, favs
}

func TestNewAnimeStore_InitialState(t *testing.T) {
	s, _, _ := newStore(t)
	state := s.Snapshot()

	assert.Equal(t, 1, state.CurrentPage)
	assert.Empty(t, state.Animes)
	assert.Empty(t, state.Favorites)
	assert.Nil(t, state.CurrentAnime)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)
}

func TestLoadAnimeList(t *testing.T) {
	s, svc, _ := newStore(t)
	ctx := context.Background()

	require.Nil(t, s.LoadAnimeList(ctx, models.SearchParams{Type: "tv"}))
	call := svc.lastCall()
	assert.Equal(t, "list", call.kind)
	assert.Equal(t, models.SearchParams{Page: 1, Limit: 20, Type: "tv"}, call.params)

	state := s.Snapshot()
	require.Len(t, state.Animes, 1)
	assert.Equal(t, "Cowboy Bebop", state.Animes[0].Title)
	assert.True(t, state.HasNextPage)
	assert.False(t, state.HasPreviousPage)
	assert.Equal(t, 120, state.TotalItems)
	assert.False(t, state.Loading)

	require.Nil(t, s.LoadAnimeList(ctx, models.SearchParams{Limit: 5}))
	assert.Equal(t, 5, svc.lastCall().params.Limit)
}

func TestLoadFailureSetsMessage(t *testing.T) {
	cases := []struct {
		name    string
		failure *apierrors.AppError
		want    string
	}{
		{"mapped reason", businessFailure("ANIME_NOT_FOUND", http.StatusNotFound), "Anime not found"},
		{"rate limit", businessFailure("RATE_LIMIT_EXCEEDED", http.StatusTooManyRequests), "Too many requests. Try again in a few minutes"},
		{"unknown reason", businessFailure("SOMETHING_ELSE", http.StatusBadRequest), "Anime module error"},
		{"generic", apierrors.NewGenericError(apierrors.ErrCodeNetworkError, apierrors.ReasonGenericError, http.StatusInternalServerError, "Connection error"), "Anime module error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, svc, _ := newStore(t)
			require.Nil(t, s.LoadTopAnime(context.Background()))

			svc.listResult = apicall.Fail[models.PaginatedResponse[models.Anime]](tc.failure)
			failure := s.LoadSeasonalAnime(context.Background())
			assert.Same(t, tc.failure, failure)

			state := s.Snapshot()
			assert.Equal(t, tc.want, state.Error)
			assert.False(t, state.Loading)
			assert.Len(t, state.Animes, 1, "previous page is kept on failure")

			svc.listResult = apicall.Ok(pageOf(1, false, false), http.StatusOK)
			require.Nil(t, s.LoadTopAnime(context.Background()))
			assert.Empty(t, s.Snapshot().Error)
		})
	}
}

func TestSearchAnimes(t *testing.T) {
	s, svc, _ := newStore(t)
	ctx := context.Background()

	require.Nil(t, s.ChangePage(ctx, 4))
	require.Nil(t, s.SearchAnimes(ctx, "bebop"))

	call := svc.lastCall()
	assert.Equal(t, "search", call.kind)
	assert.Equal(t, models.SearchParams{Q: "bebop", Page: 1, Limit: 20}, call.params)
	state := s.Snapshot()
	assert.Equal(t, "bebop", state.SearchQuery)
	assert.Equal(t, 1, state.CurrentPage)
}

func TestSearchAnimes_BlankQueryLoadsList(t *testing.T) {
	s, svc, _ := newStore(t)

	require.Nil(t, s.SearchAnimes(context.Background(), "   "))
	assert.Equal(t, "list", svc.lastCall().kind)
	assert.Empty(t, s.Snapshot().SearchQuery)
}

func TestChangePage(t *testing.T) {
	s, svc, _ := newStore(t)
	ctx := context.Background()

	require.Nil(t, s.ChangePage(ctx, 3))
	assert.Equal(t, models.SearchParams{Page: 3, Limit: 20}, svc.lastCall().params)
	assert.Equal(t, "list", svc.lastCall().kind)

	require.Nil(t, s.SearchAnimes(ctx, "naruto"))
	require.Nil(t, s.ChangePage(ctx, 2))
	call := svc.lastCall()
	assert.Equal(t, "search", call.kind)
	assert.Equal(t, 2, call.params.Page, "the requested page is searched")
	assert.Equal(t, 2, s.Snapshot().CurrentPage)
}

func TestNextAndPreviousPage(t *testing.T) {
	s, svc, _ := newStore(t)
	ctx := context.Background()

	svc.listResult = apicall.Ok(pageOf(1, false, false), http.StatusOK)
	require.Nil(t, s.LoadAnimeList(ctx, models.SearchParams{}))
	calls := svc.callCount()
	require.Nil(t, s.NextPage(ctx))
	assert.Equal(t, calls, svc.callCount(), "no next page means no call")
	require.Nil(t, s.PreviousPage(ctx))
	assert.Equal(t, calls, svc.callCount(), "page 1 has no previous page")

	svc.listResult = apicall.Ok(pageOf(1, true, false), http.StatusOK)
	require.Nil(t, s.LoadAnimeList(ctx, models.SearchParams{}))
	svc.listResult = apicall.Ok(pageOf(2, true, true), http.StatusOK)
	require.Nil(t, s.NextPage(ctx))
	assert.Equal(t, 2, s.Snapshot().CurrentPage)
	assert.Equal(t, 2, svc.lastCall().params.Page)

	svc.listResult = apicall.Ok(pageOf(1, true, false), http.StatusOK)
	require.Nil(t, s.PreviousPage(ctx))
	assert.Equal(t, 1, s.Snapshot().CurrentPage)
	assert.Equal(t, 1, svc.lastCall().params.Page)
}

func TestPreviousPage_UsesCurrentPageWhenFlagMissing(t *testing.T) {
	s, svc, _ := newStore(t)
	ctx := context.Background()

	svc.listResult = apicall.Ok(pageOf(3, true, false), http.StatusOK)
	require.Nil(t, s.ChangePage(ctx, 3))
	assert.True(t, s.Snapshot().HasPreviousPage)
}

func TestLoadAnimeByID(t *testing.T) {
	s, svc, _ := newStore(t)

	require.Nil(t, s.LoadAnimeByID(context.Background(), 7))
	current := s.Snapshot().CurrentAnime
	require.NotNil(t, current)
	assert.Equal(t, "Trigun", current.Title)

	svc.detailResult = apicall.Fail[models.AnimeDetailResponse](businessFailure("ANIME_NOT_FOUND", http.StatusNotFound))
	failure := s.LoadAnimeByID(context.Background(), 8)
	require.NotNil(t, failure)
	state := s.Snapshot()
	assert.Equal(t, "Anime not found", state.Error)
	assert.Equal(t, "Trigun", state.CurrentAnime.Title)
}

func TestClearState_KeepsFavorites(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	require.Nil(t, s.SearchAnimes(ctx, "bebop"))
	require.Nil(t, s.LoadAnimeByID(ctx, 7))
	s.AddToFavorites(ctx, models.Anime{MalID: 1})

	s.ClearState()
	state := s.Snapshot()
	assert.Empty(t, state.Animes)
	assert.Nil(t, state.CurrentAnime)
	assert.Empty(t, state.SearchQuery)
	assert.Equal(t, 1, state.CurrentPage)
	assert.False(t, state.HasNextPage)
	assert.Zero(t, state.TotalItems)
	assert.Len(t, state.Favorites, 1)
}

func TestFavorites(t *testing.T) {
	s, _, favs := newStore(t)
	ctx := context.Background()
	bebop := models.Anime{MalID: 1, Title: "Cowboy Bebop"}
	trigun := models.Anime{MalID: 6, Title: "Trigun"}

	assert.True(t, add(t, s, bebop))
	assert.False(t, add(t, s, models.Anime{MalID: 1, Title: "duplicate"}))
	assert.True(t, add(t, s, trigun))
	assert.Equal(t, 2, s.TotalFavorites())
	assert.True(t, s.IsFavorite(1))
	assert.Equal(t, []models.Anime{bebop, trigun}, favs.data["1"])

	got, ok := s.Favorite(6)
	assert.True(t, ok)
	assert.Equal(t, trigun, got)

	assert.True(t, s.RemoveFromFavorites(ctx, 1))
	assert.False(t, s.RemoveFromFavorites(ctx, 1))
	assert.False(t, s.IsFavorite(1))
	assert.Equal(t, []models.Anime{trigun}, favs.data["1"])

	assert.True(t, toggle(t, s, bebop))
	assert.True(t, s.IsFavorite(1))
	assert.False(t, toggle(t, s, bebop))
	assert.False(t, s.IsFavorite(1))
	assert.Equal(t, []models.Anime{trigun}, s.Favorites())
}

func add(t *testing.T, s *AnimeStore, anime models.Anime) bool {
	t.Helper()
	added, appErr := s.AddToFavorites(context.Background(), anime)
	require.Nil(t, appErr)
	return added
}

func toggle(t *testing.T, s *AnimeStore, anime models.Anime) bool {
	t.Helper()
	favorite, appErr := s.ToggleFavorite(context.Background(), anime)
	require.Nil(t, appErr)
	return favorite
}

func TestFavorites_Limit(t *testing.T) {
	ctx := context.Background()
	s := NewAnimeStore(ctx, "1", newFakeService(), newMemoryFavorites(), nil, WithMaxFavorites(2))

	assert.True(t, add(t, s, models.Anime{MalID: 1}))
	assert.True(t, add(t, s, models.Anime{MalID: 2}))
	assert.False(t, add(t, s, models.Anime{MalID: 2}), "a duplicate at the limit is not an error")

	require.NotNil(t, s.CheckFavoritesLimit())
	added, appErr := s.AddToFavorites(ctx, models.Anime{MalID: 3})
	assert.False(t, added)
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeFavoritesLimitReached, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, 2, appErr.Context["limit"])

	_, appErr = s.ToggleFavorite(ctx, models.Anime{MalID: 3})
	require.NotNil(t, appErr)
	assert.False(t, s.IsFavorite(3))

	assert.False(t, toggle(t, s, models.Anime{MalID: 1}), "removing works at the limit")
	assert.Nil(t, s.CheckFavoritesLimit())
	assert.True(t, toggle(t, s, models.Anime{MalID: 3}))
	assert.Equal(t, 2, s.TotalFavorites())
}

func TestFavorites_LimitHoldsUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	s := NewAnimeStore(ctx, "1", newFakeService(), newMemoryFavorites(), nil, WithMaxFavorites(5))

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, appErr := s.AddToFavorites(ctx, models.Anime{MalID: id}); appErr != nil {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, s.TotalFavorites())
	assert.Equal(t, 15, rejected)
}

func TestRegistry_PassesOptions(t *testing.T) {
	r := NewRegistry(newFakeService(), newMemoryFavorites(), nil, WithMaxFavorites(1))
	s := r.For(context.Background(), "7")

	assert.True(t, add(t, s, models.Anime{MalID: 1}))
	assert.NotNil(t, s.CheckFavoritesLimit())
}

func TestFavorites_PersistenceFailuresAreTolerated(t *testing.T) {
	svc := newFakeService()
	favs := newMemoryFavorites()
	favs.loadErr = apierrors.NewGenericError(apierrors.ErrCodeMalformedData, apierrors.ReasonGenericError, 500, "corrupt")
	favs.saveErr = apierrors.NewGenericError(apierrors.ErrCodeStorageAccess, apierrors.ReasonGenericError, 500, "disk")

	s := NewAnimeStore(context.Background(), "1", svc, favs, nil)
	assert.Empty(t, s.Favorites())

	assert.True(t, add(t, s, models.Anime{MalID: 3}))
	assert.True(t, s.IsFavorite(3))
	assert.Equal(t, 1, favs.saves)
}

func TestFavorites_LoadedFromStorage(t *testing.T) {
	ctx := context.Background()
	storage := db.NewMemoryStorage()
	repo := repositories.NewFavoritesRepository(storage, nil)
	require.Nil(t, repo.Save(ctx, "42", []models.Anime{{MalID: 9, Title: "Mushishi"}}))

	s := NewAnimeStore(ctx, "42", newFakeService(), repo, nil)
	assert.True(t, s.IsFavorite(9))

	require.NoError(t, storage.SetItem(ctx, repositories.FavoritesKey("43"), "[broken"))
	broken := NewAnimeStore(ctx, "43", newFakeService(), repo, nil)
	assert.Zero(t, broken.TotalFavorites())
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()
	require.Nil(t, s.LoadAnimeList(ctx, models.SearchParams{}))
	s.AddToFavorites(ctx, models.Anime{MalID: 1})

	snap := s.Snapshot()
	snap.Animes[0].Title = "mutated"
	snap.Favorites[0].MalID = 99

	assert.Equal(t, "Cowboy Bebop", s.Snapshot().Animes[0].Title)
	assert.True(t, s.IsFavorite(1))
}

func TestConcurrentFavoriteMutations(t *testing.T) {
	s, _, _ := newStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			s.AddToFavorites(ctx, models.Anime{MalID: id})
			_ = s.IsFavorite(id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.TotalFavorites())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(newFakeService(), newMemoryFavorites(), nil)
	ctx := context.Background()

	a := r.For(ctx, "1")
	assert.Same(t, a, r.For(ctx, "1"))
	assert.NotSame(t, a, r.For(ctx, "2"))

	r.Drop("1")
	assert.NotSame(t, a, r.For(ctx, "1"))
}

