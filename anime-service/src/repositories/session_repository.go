package repositories

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/db"
)

type sessionRepository struct {
	storage db.Storage
	logger  *slog.Logger
	// guards the token index
	mu sync.Mutex
}

// NewSessionRepository stores sessions under session:<token> plus an index
// of live tokens.
func NewSessionRepository(storage db.Storage, logger *slog.Logger) SessionRepository {
	return &sessionRepository{storage: storage, logger: loggerOrDefault(logger)}
}

func (r *sessionRepository) Save(ctx context.Context, session models.Session) *apierrors.AppError {
	raw, err := json.Marshal(session)
	if err != nil {
		return malformedError(SessionKey(session.Token), err)
	}
	if err := r.storage.SetItem(ctx, SessionKey(session.Token), string(raw)); err != nil {
		return storageError("save_session", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	tokens, appErr := r.readIndex(ctx)
	if appErr != nil {
		return appErr
	}
	if lo.Contains(tokens, session.Token) {
		return nil
	}
	return r.writeIndex(ctx, append(tokens, session.Token))
}

// Get returns a malformed-data error for entries that are not valid JSON.
func (r *sessionRepository) Get(ctx context.Context, token string) (models.Session, bool, *apierrors.AppError) {
	key := SessionKey(token)
	raw, found, err := r.storage.GetItem(ctx, key)
	if err != nil {
		return models.Session{}, false, storageError("get_session", err)
	}
	if !found {
		return models.Session{}, false, nil
	}

	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		r.logger.WarnContext(ctx, "Stored session is not valid JSON",
			slog.String("component", "session_repository"),
			slog.String("key", key),
			slog.Any("error", err))
		return models.Session{}, false, malformedError(key, err)
	}
	return session, true, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) *apierrors.AppError {
	if err := r.storage.RemoveItem(ctx, SessionKey(token)); err != nil {
		return storageError("delete_session", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	tokens, appErr := r.readIndex(ctx)
	if appErr != nil {
		return appErr
	}
	if !lo.Contains(tokens, token) {
		return nil
	}
	return r.writeIndex(ctx, lo.Without(tokens, token))
}

func (r *sessionRepository) Tokens(ctx context.Context) ([]string, *apierrors.AppError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readIndex(ctx)
}

func (r *sessionRepository) readIndex(ctx context.Context) ([]string, *apierrors.AppError) {
	raw, found, err := r.storage.GetItem(ctx, sessionIndexKey)
	if err != nil {
		return nil, storageError("read_session_index", err)
	}
	if !found {
		return []string{}, nil
	}
	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		r.logger.WarnContext(ctx, "Session index is corrupt, resetting",
			slog.String("component", "session_repository"),
			slog.Any("error", err))
		return []string{}, nil
	}
	return tokens, nil
}

func (r *sessionRepository) writeIndex(ctx context.Context, tokens []string) *apierrors.AppError {
	raw, err := json.Marshal(tokens)
	if err != nil {
		return malformedError(sessionIndexKey, err)
	}
	if err := r.storage.SetItem(ctx, sessionIndexKey, string(raw)); err != nil {
		return storageError("write_session_index", err)
	}
	return nil
}
