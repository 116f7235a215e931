package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apirequests"
	"github.com/narender/anime-explorer/common/apiresponses"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
	"github.com/narender/anime-explorer/common/validator"
)

func favoriteNotFound(id int) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeFavoriteNotFound, apierrors.ErrCodeFavoriteNotFound,
		http.StatusNotFound, "Favorite not found").WithContext("mal_id", id)
}

type favoritesView struct {
	Total     int            `json:"total"`
	Favorites []models.Anime `json:"favorites"`
}

func (h *AnimeHandler) GetFavorites(c *fiber.Ctx) error {
	favorites := h.storeOf(c).Favorites()
	return reply(c, http.StatusOK, favoritesView{Total: len(favorites), Favorites: favorites})
}

func (h *AnimeHandler) GetFavorite(c *fiber.Ctx) error {
	id, appErr := animeID(c)
	if appErr != nil {
		return appErr
	}
	anime, ok := h.storeOf(c).Favorite(id)
	if !ok {
		return favoriteNotFound(id)
	}
	return reply(c, http.StatusOK, anime)
}

// fetchAnime loads the catalog entry that is stored as a favorite.
func (h *AnimeHandler) fetchAnime(c *fiber.Ctx, id int) (models.Anime, *apierrors.AppError) {
	result := apicall.MapEither(h.service.GetAnimeByID(c.UserContext(), id),
		func(detail models.AnimeDetailResponse) models.Anime { return detail.Data })
	success, failure := apicall.Unwrap(result)
	if failure != nil {
		return models.Anime{}, presentFailure(failure)
	}
	return success.Data, nil
}

// AddFavorite adds the anime named by mal_id. Adding a favorite twice is
// not an error.
func (h *AnimeHandler) AddFavorite(c *fiber.Ctx) (err error) {
	ctx := c.UserContext()

	var req apirequests.AddFavoriteRequest
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return invalidBody(parseErr)
	}
	if validatorErr := validator.ValidateRequest(&req); validatorErr != nil {
		h.logger.WarnContext(ctx, "Request validation failed",
			slog.String("component", component),
			slog.String("validator_error", validatorErr.Message),
			slog.String("operation", "add_favorite"))
		return validatorErr
	}

	ctx, span := commontrace.StartSpan(ctx, attribute.Int("anime.id", req.MalID))
	defer commontrace.EndSpan(span, &err, nil)

	s := h.storeOf(c)
	if existing, ok := s.Favorite(req.MalID); ok {
		return reply(c, http.StatusOK, existing)
	}

	anime, appErr := h.fetchAnime(c, req.MalID)
	if appErr != nil {
		return appErr
	}
	added, appErr := s.AddToFavorites(ctx, anime)
	if appErr != nil {
		return appErr
	}
	if !added {
		return reply(c, http.StatusOK, anime)
	}

	h.logger.InfoContext(ctx, "Favorite added",
		slog.String("component", component),
		slog.Int("anime_id", anime.MalID),
		slog.Int("favorites", s.TotalFavorites()))
	return reply(c, http.StatusCreated, anime)
}

func (h *AnimeHandler) RemoveFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, appErr := animeID(c)
	if appErr != nil {
		return appErr
	}

	if !h.storeOf(c).RemoveFromFavorites(ctx, id) {
		return favoriteNotFound(id)
	}

	h.logger.InfoContext(ctx, "Favorite removed",
		slog.String("component", component),
		slog.Int("anime_id", id))
	return reply(c, http.StatusOK, apiresponses.ActionConfirmation{Message: "Favorite removed"})
}

// ToggleFavorite removes a favorite or adds it when absent. Adding honours
// the favorites limit.
func (h *AnimeHandler) ToggleFavorite(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, appErr := animeID(c)
	if appErr != nil {
		return appErr
	}

	s := h.storeOf(c)
	anime, ok := s.Favorite(id)
	if !ok {
		if appErr := s.CheckFavoritesLimit(); appErr != nil {
			return appErr
		}
		if anime, appErr = h.fetchAnime(c, id); appErr != nil {
			return appErr
		}
	}

	favorite, appErr := s.ToggleFavorite(ctx, anime)
	if appErr != nil {
		return appErr
	}
	h.logger.InfoContext(ctx, "Favorite toggled",
		slog.String("component", component),
		slog.Int("anime_id", id),
		slog.Bool("favorite", favorite))
	return reply(c, http.StatusOK, fiber.Map{
		"mal_id":   id,
		"favorite": favorite,
	})
}
