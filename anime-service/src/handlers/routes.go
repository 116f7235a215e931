package handlers

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every route on router.
func (h *AnimeHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HealthCheck)

	anime := router.Group("/anime")
	anime.Get("/", h.GetAnimeList)
	anime.Get("/top", h.GetTopAnime)
	anime.Get("/seasonal", h.GetSeasonalAnime)
	anime.Get("/search", h.SearchAnime)
	anime.Get("/genre/:genreId", h.GetAnimeByGenre)
	anime.Get("/:id", h.GetAnimeByID)
	anime.Get("/:id/characters", h.GetAnimeCharacters)
	anime.Get("/:id/recommendations", h.GetAnimeRecommendations)
	anime.Get("/:id/statistics", h.GetAnimeStats)
	anime.Get("/:id/full", h.GetAnimeDetailBundle)

	authGroup := router.Group("/auth")
	authGroup.Post("/login", h.RequireGuest, h.LoginRateLimit, h.Login)
	authGroup.Post("/register", h.RequireGuest, h.Register)
	authGroup.Post("/register/sections/:section/validate", h.RequireGuest, h.ValidateRegisterSection)
	authGroup.Get("/me", h.RequireAuth, h.Me)
	authGroup.Post("/logout", h.RequireAuth, h.Logout)

	me := router.Group("/me", h.RequireAuth)
	me.Get("/browse", h.GetBrowseState)
	me.Post("/browse/list", h.BrowseList)
	me.Post("/browse/top", h.BrowseTop)
	me.Post("/browse/seasonal", h.BrowseSeasonal)
	me.Post("/browse/search", h.BrowseSearch)
	me.Post("/browse/page/:page", h.BrowsePage)
	me.Post("/browse/next", h.BrowseNext)
	me.Post("/browse/previous", h.BrowsePrevious)
	me.Post("/browse/clear", h.BrowseClear)

	me.Get("/favorites", h.FavoritesNotEmpty, h.GetFavorites)
	me.Post("/favorites", h.FavoritesLimit, h.AddFavorite)
	me.Get("/favorites/:id", h.GetFavorite)
	me.Delete("/favorites/:id", h.RemoveFavorite)
	me.Post("/favorites/:id/toggle", h.ToggleFavorite)
}
