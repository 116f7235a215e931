package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/narender/anime-explorer/anime-service/src/auth"
	"github.com/narender/anime-explorer/anime-service/src/services"
	"github.com/narender/anime-explorer/anime-service/src/store"
	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apiresponses"
	"github.com/narender/anime-explorer/common/either"
	"github.com/narender/anime-explorer/common/globals"
	"github.com/narender/anime-explorer/common/middleware"
)

const component = "anime_handler"

// Dependencies are the collaborators of AnimeHandler. A zero
// LoginMaxAttempts disables login throttling.
type Dependencies struct {
	Service            services.AnimeService
	Auth               *auth.Service
	Stores             *store.Registry
	LoginMaxAttempts   int
	LoginAttemptWindow time.Duration
	Logger             *slog.Logger
}

type AnimeHandler struct {
	service      services.AnimeService
	auth         *auth.Service
	stores       *store.Registry
	loginLimiter fiber.Handler
	logger       *slog.Logger
}

func NewAnimeHandler(deps Dependencies) *AnimeHandler {
	logger := deps.Logger
	if logger == nil {
		logger = globals.GetLogger()
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &AnimeHandler{
		service: deps.Service,
		auth:    deps.Auth,
		stores:  deps.Stores,
		logger:  logger,
	}
	h.loginLimiter = h.newLoginLimiter(deps.LoginMaxAttempts, deps.LoginAttemptWindow)
	return h
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.RequestIDKey).(string)
	return id
}

func reply(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(apiresponses.NewSuccessResponse(data).WithRequestID(requestID(c)))
}

// presentFailure rewrites the message of a catalog failure with the user
// message of its reason. The status and code are kept.
func presentFailure(failure *apierrors.AppError) *apierrors.AppError {
	if failure == nil {
		return apierrors.NewUnexpectedError(nil)
	}
	out := *failure
	out.Message = services.MessageFor(failure)
	return &out
}

func writeResult[T any](c *fiber.Ctx, result apicall.Result[T]) error {
	return either.Fold(result,
		func(failure *apierrors.AppError) error {
			return presentFailure(failure)
		},
		func(success apicall.Success[T]) error {
			return reply(c, http.StatusOK, success.Data)
		})
}

func invalidParam(name, value string) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeRequestValidation, "INVALID_PARAMETER",
		http.StatusBadRequest, "Invalid "+name+": "+value).
		WithContext("parameter", name)
}

func invalidBody(err error) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeRequestValidation, "INVALID_BODY",
		http.StatusBadRequest, "Invalid request body format").WithCause(err)
}

func animeID(c *fiber.Ctx) (int, *apierrors.AppError) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apierrors.NewBusinessError(apierrors.ErrCodeInvalidAnimeID, apierrors.ErrCodeInvalidAnimeID,
			http.StatusBadRequest, "Invalid anime id: "+c.Params("id"))
	}
	return id, nil
}

func pageQuery(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", 0)
}
