// Package store holds the per-user browsing state: the current anime page,
// the selected anime, paging flags and the persisted favorites.
package store

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/anime-service/src/repositories"
	"github.com/narender/anime-explorer/anime-service/src/services"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/either"
)

// State is a read-only copy of an AnimeStore.
type State struct {
	Animes          []models.Anime `json:"animes"`
	CurrentAnime    *models.Anime  `json:"currentAnime"`
	Favorites       []models.Anime `json:"favorites"`
	SearchQuery     string         `json:"searchQuery"`
	CurrentPage     int            `json:"currentPage"`
	HasNextPage     bool           `json:"hasNextPage"`
	HasPreviousPage bool           `json:"hasPreviousPage"`
	TotalItems      int            `json:"totalItems"`
	Loading         bool           `json:"loading"`
	Error           string         `json:"error,omitempty"`
}

// AnimeStore is the browsing state of one user. It is safe for concurrent
// use; concurrent loads are last-write-wins.
type AnimeStore struct {
	mu        sync.RWMutex
	state     State
	userID    string
	service   services.AnimeService
	favorites repositories.FavoritesRepository
	logger    *slog.Logger

	maxFavorites int
}

// Option configures an AnimeStore.
type Option func(*AnimeStore)

// WithMaxFavorites caps the favorites list. Zero means unlimited.
func WithMaxFavorites(n int) Option {
	return func(s *AnimeStore) {
		s.maxFavorites = n
	}
}

// NewAnimeStore creates the store for userID and loads its favorites.
// Unreadable favorites start the store with an empty list.
func NewAnimeStore(ctx context.Context, userID string, service services.AnimeService, favorites repositories.FavoritesRepository, logger *slog.Logger, opts ...Option) *AnimeStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AnimeStore{
		state:     State{CurrentPage: 1, Animes: []models.Anime{}, Favorites: []models.Anime{}},
		userID:    userID,
		service:   service,
		favorites: favorites,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loadFavorites(ctx)
	return s
}

func (s *AnimeStore) loadFavorites(ctx context.Context) {
	if s.favorites == nil {
		return
	}
	stored, appErr := s.favorites.Load(ctx, s.userID)
	if appErr != nil {
		s.logger.ErrorContext(ctx, "Error loading favorites from storage",
			slog.String("component", "anime_store"),
			slog.String("user_id", s.userID),
			slog.String("error_code", appErr.Code))
		return
	}
	s.state.Favorites = stored
}

// must be called with mu held
func (s *AnimeStore) saveFavorites(ctx context.Context) {
	if s.favorites == nil {
		return
	}
	if appErr := s.favorites.Save(ctx, s.userID, slices.Clone(s.state.Favorites)); appErr != nil {
		s.logger.ErrorContext(ctx, "Error saving favorites to storage",
			slog.String("component", "anime_store"),
			slog.String("user_id", s.userID),
			slog.String("error_code", appErr.Code))
	}
}

func (s *AnimeStore) setLoading() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Error = ""
	return s.state.CurrentPage
}

// must be called with mu held
func (s *AnimeStore) fail(failure *apierrors.AppError) *apierrors.AppError {
	s.state.Error = services.MessageFor(failure)
	s.state.Loading = false
	return failure
}

func (s *AnimeStore) applyPage(result apicall.Result[models.PaginatedResponse[models.Anime]]) *apierrors.AppError {
	s.mu.Lock()
	defer s.mu.Unlock()

	return either.Fold(result,
		s.fail,
		func(success apicall.Success[models.PaginatedResponse[models.Anime]]) *apierrors.AppError {
			page := success.Data
			s.state.Animes = page.Data
			if s.state.Animes == nil {
				s.state.Animes = []models.Anime{}
			}
			s.state.HasNextPage = page.Pagination.HasNextPage
			s.state.HasPreviousPage = page.Pagination.HasPreviousPage || page.Pagination.CurrentPage > 1
			s.state.TotalItems = page.Pagination.Items.Total
			s.state.Loading = false
			return nil
		})
}

// LoadAnimeList loads the current page with a page size of 20. Fields set in
// params override those defaults.
func (s *AnimeStore) LoadAnimeList(ctx context.Context, params models.SearchParams) *apierrors.AppError {
	page := s.setLoading()
	merged := models.SearchParams{Page: page, Limit: models.DefaultPageLimit}.Merge(params)
	return s.applyPage(s.service.GetAnimeList(ctx, merged))
}

// LoadTopAnime loads the current page of the top list.
func (s *AnimeStore) LoadTopAnime(ctx context.Context) *apierrors.AppError {
	page := s.setLoading()
	return s.applyPage(s.service.GetTopAnime(ctx, page, models.DefaultPageLimit))
}

// LoadSeasonalAnime loads the current page of this season's anime.
func (s *AnimeStore) LoadSeasonalAnime(ctx context.Context) *apierrors.AppError {
	page := s.setLoading()
	return s.applyPage(s.service.GetSeasonalAnime(ctx, page, models.DefaultPageLimit))
}

// SearchAnimes searches by title from page 1. A blank query loads the list instead.
func (s *AnimeStore) SearchAnimes(ctx context.Context, query string) *apierrors.AppError {
	if strings.TrimSpace(query) == "" {
		return s.LoadAnimeList(ctx, models.SearchParams{})
	}

	s.mu.Lock()
	s.state.SearchQuery = query
	s.state.CurrentPage = 1
	s.mu.Unlock()

	return s.search(ctx, query)
}

func (s *AnimeStore) search(ctx context.Context, query string) *apierrors.AppError {
	page := s.setLoading()
	return s.applyPage(s.service.SearchAnime(ctx, query, page, models.DefaultPageLimit))
}

// LoadAnimeByID loads one anime into CurrentAnime.
func (s *AnimeStore) LoadAnimeByID(ctx context.Context, id int) *apierrors.AppError {
	s.setLoading()
	result := s.service.GetAnimeByID(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	return either.Fold(result,
		s.fail,
		func(success apicall.Success[models.AnimeDetailResponse]) *apierrors.AppError {
			anime := success.Data.Data
			s.state.CurrentAnime = &anime
			s.state.Loading = false
			return nil
		})
}

// ChangePage moves to page and reloads. With an active search query the
// search is repeated for that page.
func (s *AnimeStore) ChangePage(ctx context.Context, page int) *apierrors.AppError {
	s.mu.Lock()
	s.state.CurrentPage = page
	query := s.state.SearchQuery
	s.mu.Unlock()

	if query != "" {
		return s.search(ctx, query)
	}
	return s.LoadAnimeList(ctx, models.SearchParams{})
}

// NextPage advances one page when a next page exists.
func (s *AnimeStore) NextPage(ctx context.Context) *apierrors.AppError {
	s.mu.RLock()
	hasNext, page := s.state.HasNextPage, s.state.CurrentPage
	s.mu.RUnlock()

	if !hasNext {
		return nil
	}
	return s.ChangePage(ctx, page+1)
}

// PreviousPage goes back one page when a previous page exists.
func (s *AnimeStore) PreviousPage(ctx context.Context) *apierrors.AppError {
	s.mu.RLock()
	hasPrev, page := s.state.HasPreviousPage, s.state.CurrentPage
	s.mu.RUnlock()

	if !hasPrev || page <= 1 {
		return nil
	}
	return s.ChangePage(ctx, page-1)
}

// ClearState resets browsing state. Favorites are kept.
func (s *AnimeStore) ClearState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{CurrentPage: 1, Animes: []models.Anime{}, Favorites: s.state.Favorites}
}

// Snapshot returns a copy of the current state.
func (s *AnimeStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.Animes = slices.Clone(s.state.Animes)
	out.Favorites = slices.Clone(s.state.Favorites)
	if s.state.CurrentAnime != nil {
		current := *s.state.CurrentAnime
		out.CurrentAnime = &current
	}
	return out
}
