package store

import (
	"context"
	"net/http"
	"slices"

	"github.com/samber/lo"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apierrors"
)

func containsID(list []models.Anime, id int) bool {
	return lo.ContainsBy(list, func(a models.Anime) bool { return a.MalID == id })
}

// IsFavorite reports whether the anime with id is a favorite.
func (s *AnimeStore) IsFavorite(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsID(s.state.Favorites, id)
}

// TotalFavorites returns the number of favorites.
func (s *AnimeStore) TotalFavorites() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Favorites)
}

// Favorites returns a copy of the favorites list.
func (s *AnimeStore) Favorites() []models.Anime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Favorites)
}

// Favorite returns the favorite with id.
func (s *AnimeStore) Favorite(id int) (models.Anime, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Find(s.state.Favorites, func(a models.Anime) bool { return a.MalID == id })
}

// FavoritesLimitError is returned when the favorites list is full.
func FavoritesLimitError(limit int) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeFavoritesLimitReached, apierrors.ErrCodeFavoritesLimitReached,
		http.StatusConflict, "Favorites limit reached").
		WithContext("limit", limit)
}

// CheckFavoritesLimit returns a FavoritesLimitError when no favorite can be
// added.
func (s *AnimeStore) CheckFavoritesLimit() *apierrors.AppError {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.limitError()
}

// must be called with mu held
func (s *AnimeStore) limitError() *apierrors.AppError {
	if s.maxFavorites > 0 && len(s.state.Favorites) >= s.maxFavorites {
		return FavoritesLimitError(s.maxFavorites)
	}
	return nil
}

// AddToFavorites appends anime unless one with the same id is present.
// It reports whether the list changed. A full list is an error.
func (s *AnimeStore) AddToFavorites(ctx context.Context, anime models.Anime) (bool, *apierrors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsID(s.state.Favorites, anime.MalID) {
		return false, nil
	}
	if appErr := s.limitError(); appErr != nil {
		return false, appErr
	}
	s.state.Favorites = append(s.state.Favorites, anime)
	s.saveFavorites(ctx)
	return true, nil
}

// RemoveFromFavorites drops every favorite with id. It reports whether the
// list changed.
func (s *AnimeStore) RemoveFromFavorites(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !containsID(s.state.Favorites, id) {
		return false
	}
	s.state.Favorites = lo.Reject(s.state.Favorites, func(a models.Anime, _ int) bool { return a.MalID == id })
	s.saveFavorites(ctx)
	return true
}

// ToggleFavorite removes anime when it is a favorite and adds it otherwise.
// It returns the resulting favorite status. Adding to a full list is an
// error.
func (s *AnimeStore) ToggleFavorite(ctx context.Context, anime models.Anime) (bool, *apierrors.AppError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsID(s.state.Favorites, anime.MalID) {
		s.state.Favorites = lo.Reject(s.state.Favorites, func(a models.Anime, _ int) bool { return a.MalID == anime.MalID })
		s.saveFavorites(ctx)
		return false, nil
	}
	if appErr := s.limitError(); appErr != nil {
		return false, appErr
	}
	s.state.Favorites = append(s.state.Favorites, anime)
	s.saveFavorites(ctx)
	return true, nil
}
