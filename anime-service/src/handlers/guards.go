package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/anime-service/src/store"
	"github.com/narender/anime-explorer/common/apierrors"
)

const (
	localsSession = "session"
	bearerPrefix  = "Bearer "
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

func sessionOf(c *fiber.Ctx) (models.Session, bool) {
	session, ok := c.Locals(localsSession).(models.Session)
	return session, ok
}

// storeOf returns the browsing store of the authenticated user.
func (h *AnimeHandler) storeOf(c *fiber.Ctx) *store.AnimeStore {
	session, _ := sessionOf(c)
	return h.stores.For(c.UserContext(), session.User.ID)
}

// RequireAuth rejects requests without a live bearer session.
func (h *AnimeHandler) RequireAuth(c *fiber.Ctx) error {
	ctx := c.UserContext()
	session, ok := h.auth.Session(ctx, bearerToken(c))
	if !ok {
		h.logger.WarnContext(ctx, "Private route requested without a session",
			slog.String("component", component),
			slog.String("path", c.Path()))
		return apierrors.NewBusinessError(apierrors.ErrCodeAuthRequired, apierrors.ErrCodeAuthRequired,
			http.StatusUnauthorized, "Authentication required")
	}
	c.Locals(localsSession, session)
	return c.Next()
}

// RequireGuest rejects requests that already carry a live session.
func (h *AnimeHandler) RequireGuest(c *fiber.Ctx) error {
	if token := bearerToken(c); token != "" && h.auth.IsAuthenticated(c.UserContext(), token) {
		return apierrors.NewBusinessError(apierrors.ErrCodeAlreadyAuthenticated, apierrors.ErrCodeAlreadyAuthenticated,
			http.StatusConflict, "Already authenticated")
	}
	return c.Next()
}

// LoginRateLimit throttles login attempts per client IP.
func (h *AnimeHandler) LoginRateLimit(c *fiber.Ctx) error {
	return h.loginLimiter(c)
}

// newLoginLimiter allows maxAttempts attempts per client IP inside a sliding window.
// Every attempt counts, whether or not the login succeeds.
func (h *AnimeHandler) newLoginLimiter(maxAttempts int, window time.Duration) fiber.Handler {
	if maxAttempts <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if window < time.Second {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:               maxAttempts,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c *fiber.Ctx) string {
			return "login:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			h.logger.WarnContext(c.UserContext(), "Login attempts exhausted",
				slog.String("component", component),
				slog.String("client_ip", c.IP()))
			return apierrors.NewBusinessError(apierrors.ErrCodeLoginRateLimited, apierrors.ErrCodeLoginRateLimited,
				http.StatusTooManyRequests, "Too many login attempts. Try again later").
				WithContext("limit", maxAttempts)
		},
	})
}

// FavoritesNotEmpty rejects requests from users without favorites.
func (h *AnimeHandler) FavoritesNotEmpty(c *fiber.Ctx) error {
	if h.storeOf(c).TotalFavorites() == 0 {
		return apierrors.NewBusinessError(apierrors.ErrCodeNoFavorites, apierrors.ErrCodeNoFavorites,
			http.StatusNotFound, "You have no favorites yet")
	}
	return c.Next()
}

// FavoritesLimit rejects requests from users at the favorites limit.
func (h *AnimeHandler) FavoritesLimit(c *fiber.Ctx) error {
	if appErr := h.storeOf(c).CheckFavoritesLimit(); appErr != nil {
		return appErr
	}
	return c.Next()
}
