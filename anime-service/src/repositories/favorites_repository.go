package repositories

import (
	"context"
	"encoding/json"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/db"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

type favoritesRepository struct {
	storage db.Storage
	logger  *slog.Logger
}

// NewFavoritesRepository stores favorites as a JSON array per user.
func NewFavoritesRepository(storage db.Storage, logger *slog.Logger) FavoritesRepository {
	return &favoritesRepository{storage: storage, logger: loggerOrDefault(logger)}
}

func (r *favoritesRepository) Load(ctx context.Context, userID string) (favorites []models.Anime, appErr *apierrors.AppError) {
	key := FavoritesKey(userID)
	ctx, span := commontrace.StartSpan(ctx, attribute.String("storage.key", key))
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	raw, found, err := r.storage.GetItem(ctx, key)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error loading favorites from storage",
			slog.String("component", "favorites_repository"),
			slog.String("key", key),
			slog.Any("error", err))
		return nil, storageError("load_favorites", err)
	}
	if !found || raw == "" {
		return []models.Anime{}, nil
	}

	if err := json.Unmarshal([]byte(raw), &favorites); err != nil {
		r.logger.ErrorContext(ctx, "Stored favorites are not valid JSON",
			slog.String("component", "favorites_repository"),
			slog.String("key", key),
			slog.Any("error", err))
		return nil, malformedError(key, err)
	}
	if favorites == nil {
		favorites = []models.Anime{}
	}
	span.SetAttributes(attribute.Int("favorites.count", len(favorites)))
	return favorites, nil
}

func (r *favoritesRepository) Save(ctx context.Context, userID string, favorites []models.Anime) (appErr *apierrors.AppError) {
	key := FavoritesKey(userID)
	ctx, span := commontrace.StartSpan(ctx, attribute.String("storage.key", key), attribute.Int("favorites.count", len(favorites)))
	defer func() {
		var telemetryErr error
		if appErr != nil {
			telemetryErr = appErr
		}
		commontrace.EndSpan(span, &telemetryErr, nil)
	}()

	if favorites == nil {
		favorites = []models.Anime{}
	}
	raw, err := json.Marshal(favorites)
	if err != nil {
		return malformedError(key, err)
	}
	if err := r.storage.SetItem(ctx, key, string(raw)); err != nil {
		r.logger.ErrorContext(ctx, "Error saving favorites to storage",
			slog.String("component", "favorites_repository"),
			slog.String("key", key),
			slog.Any("error", err))
		return storageError("save_favorites", err)
	}
	return nil
}
