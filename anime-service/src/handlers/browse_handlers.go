package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/anime-service/src/store"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apirequests"
)

// browse runs action on the caller's store and answers with the resulting state.
func (h *AnimeHandler) browse(c *fiber.Ctx, operation string, action func(s *store.AnimeStore) *apierrors.AppError) error {
	ctx := c.UserContext()
	s := h.storeOf(c)

	h.logger.DebugContext(ctx, "Browse action requested",
		slog.String("component", component),
		slog.String("operation", operation))

	if appErr := action(s); appErr != nil {
		return presentFailure(appErr)
	}
	return reply(c, http.StatusOK, s.Snapshot())
}

// GetBrowseState returns the caller's browsing state.
func (h *AnimeHandler) GetBrowseState(c *fiber.Ctx) error {
	return reply(c, http.StatusOK, h.storeOf(c).Snapshot())
}

// BrowseList loads the anime list. The optional body holds filters.
func (h *AnimeHandler) BrowseList(c *fiber.Ctx) error {
	var params models.SearchParams
	if len(c.Body()) > 0 {
		if parseErr := c.BodyParser(&params); parseErr != nil {
			return invalidBody(parseErr)
		}
	}
	return h.browse(c, "browse_list", func(s *store.AnimeStore) *apierrors.AppError {
		return s.LoadAnimeList(c.UserContext(), params)
	})
}

func (h *AnimeHandler) BrowseTop(c *fiber.Ctx) error {
	return h.browse(c, "browse_top", func(s *store.AnimeStore) *apierrors.AppError {
		return s.LoadTopAnime(c.UserContext())
	})
}

func (h *AnimeHandler) BrowseSeasonal(c *fiber.Ctx) error {
	return h.browse(c, "browse_seasonal", func(s *store.AnimeStore) *apierrors.AppError {
		return s.LoadSeasonalAnime(c.UserContext())
	})
}

// BrowseSearch searches by title. The query comes from the body or from ?q=.
func (h *AnimeHandler) BrowseSearch(c *fiber.Ctx) error {
	var req apirequests.SearchRequest
	if len(c.Body()) > 0 {
		if parseErr := c.BodyParser(&req); parseErr != nil {
			return invalidBody(parseErr)
		}
	}
	if req.Query == "" {
		req.Query = c.Query("q")
	}
	return h.browse(c, "browse_search", func(s *store.AnimeStore) *apierrors.AppError {
		return s.SearchAnimes(c.UserContext(), req.Query)
	})
}

func (h *AnimeHandler) BrowsePage(c *fiber.Ctx) error {
	page, parseErr := c.ParamsInt("page")
	if parseErr != nil || page < 1 {
		return invalidParam("page", c.Params("page"))
	}
	return h.browse(c, "browse_page", func(s *store.AnimeStore) *apierrors.AppError {
		return s.ChangePage(c.UserContext(), page)
	})
}

func (h *AnimeHandler) BrowseNext(c *fiber.Ctx) error {
	return h.browse(c, "browse_next", func(s *store.AnimeStore) *apierrors.AppError {
		return s.NextPage(c.UserContext())
	})
}

func (h *AnimeHandler) BrowsePrevious(c *fiber.Ctx) error {
	return h.browse(c, "browse_previous", func(s *store.AnimeStore) *apierrors.AppError {
		return s.PreviousPage(c.UserContext())
	})
}

// BrowseClear resets the browsing state. Favorites are kept.
func (h *AnimeHandler) BrowseClear(c *fiber.Ctx) error {
	return h.browse(c, "browse_clear", func(s *store.AnimeStore) *apierrors.AppError {
		s.ClearState()
		return nil
	})
}
