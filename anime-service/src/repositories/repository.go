package repositories

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apierrors"
)

const (
	favoritesKeyPrefix = "anime-favorites:"
	sessionKeyPrefix   = "session:"
	sessionIndexKey    = "session-index"
)

// FavoritesKey is the storage key holding userID's favorites.
func FavoritesKey(userID string) string { return favoritesKeyPrefix + userID }

// SessionKey is the storage key holding the session for token.
func SessionKey(token string) string { return sessionKeyPrefix + token }

// FavoritesRepository persists each user's favorite list.
type FavoritesRepository interface {
	Load(ctx context.Context, userID string) ([]models.Anime, *apierrors.AppError)
	Save(ctx context.Context, userID string, favorites []models.Anime) *apierrors.AppError
}

// SessionRepository persists login sessions.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) *apierrors.AppError
	Get(ctx context.Context, token string) (models.Session, bool, *apierrors.AppError)
	Delete(ctx context.Context, token string) *apierrors.AppError
	Tokens(ctx context.Context) ([]string, *apierrors.AppError)
}

func storageError(op string, err error) *apierrors.AppError {
	return apierrors.NewGenericError(apierrors.ErrCodeStorageAccess, apierrors.ReasonGenericError,
		http.StatusInternalServerError, "Failed to access storage").
		WithContext("operation", op).
		WithCause(err)
}

func malformedError(key string, err error) *apierrors.AppError {
	return apierrors.NewGenericError(apierrors.ErrCodeMalformedData, apierrors.ReasonGenericError,
		http.StatusInternalServerError, "Stored data is corrupt").
		WithContext("key", key).
		WithCause(err)
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
