package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/anime-service/src/repositories"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apirequests"
	commontrace "github.com/narender/anime-explorer/common/telemetry/trace"
)

// Service issues and tracks sessions. Live sessions are cached in memory
// and persisted through the session repository.
type Service struct {
	provider Provider
	sessions repositories.SessionRepository
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.RWMutex
	cache map[string]models.Session
}

func NewService(provider Provider, sessions repositories.SessionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
		cache:    make(map[string]models.Session),
	}
}

func endSpan(span trace.Span, appErr *apierrors.AppError) {
	var err error
	if appErr != nil {
		err = appErr
	}
	commontrace.EndSpan(span, &err, nil)
}

// Login authenticates req through the provider and opens a session.
func (s *Service) Login(ctx context.Context, req apirequests.LoginRequest) (resp models.AuthResponse, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { endSpan(span, appErr) }()

	user, appErr := s.provider.Login(ctx, req)
	if appErr != nil {
		s.logger.WarnContext(ctx, "Login rejected",
			slog.String("component", "auth_service"),
			slog.String("reason", appErr.Reason),
			slog.String("message", appErr.Message))
		return models.AuthResponse{}, appErr
	}
	return s.open(ctx, user)
}

// Register creates an account through the provider and opens a session.
func (s *Service) Register(ctx context.Context, req apirequests.RegisterRequest) (resp models.AuthResponse, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { endSpan(span, appErr) }()

	user, appErr := s.provider.Register(ctx, req)
	if appErr != nil {
		s.logger.WarnContext(ctx, "Registration rejected",
			slog.String("component", "auth_service"),
			slog.String("reason", appErr.Reason),
			slog.String("message", appErr.Message))
		return models.AuthResponse{}, appErr
	}
	return s.open(ctx, user)
}

func (s *Service) open(ctx context.Context, user models.User) (models.AuthResponse, *apierrors.AppError) {
	session := models.Session{
		Token:     uuid.NewString(),
		User:      user,
		CreatedAt: s.now().Unix(),
	}
	if appErr := s.sessions.Save(ctx, session); appErr != nil {
		s.logger.WarnContext(ctx, "Failed to persist session, keeping it in memory only",
			slog.String("component", "auth_service"),
			slog.String("user_id", user.ID),
			slog.String("error_code", appErr.Code))
	}

	s.mu.Lock()
	s.cache[session.Token] = session
	s.mu.Unlock()

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("user.id", user.ID))
	s.logger.InfoContext(ctx, "Session opened",
		slog.String("component", "auth_service"),
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return models.AuthResponse{User: user, Token: session.Token}, nil
}

// Logout closes the session of token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) (appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { endSpan(span, appErr) }()

	s.mu.Lock()
	delete(s.cache, token)
	s.mu.Unlock()

	if deleteErr := s.sessions.Delete(ctx, token); deleteErr != nil {
		s.logger.WarnContext(ctx, "Failed to remove stored session",
			slog.String("component", "auth_service"),
			slog.String("error_code", deleteErr.Code))
	}
	s.logger.InfoContext(ctx, "Session closed", slog.String("component", "auth_service"))
	return nil
}

// Session returns the live session of token. A stored session that cannot
// be decoded is removed and reported as missing.
func (s *Service) Session(ctx context.Context, token string) (models.Session, bool) {
	if token == "" {
		return models.Session{}, false
	}

	s.mu.RLock()
	session, ok := s.cache[token]
	s.mu.RUnlock()
	if ok {
		return session, true
	}

	session, found, appErr := s.sessions.Get(ctx, token)
	if appErr != nil {
		if appErr.Code == apierrors.ErrCodeMalformedData {
			s.discard(ctx, token)
		}
		return models.Session{}, false
	}
	if !found {
		return models.Session{}, false
	}

	s.mu.Lock()
	s.cache[token] = session
	s.mu.Unlock()
	return session, true
}

// IsAuthenticated reports whether token belongs to a live session.
func (s *Service) IsAuthenticated(ctx context.Context, token string) bool {
	_, ok := s.Session(ctx, token)
	return ok
}

// Restore loads every persisted session into memory and returns how many
// were restored. Entries that are corrupt or missing are removed.
func (s *Service) Restore(ctx context.Context) (restored int, appErr *apierrors.AppError) {
	ctx, span := commontrace.StartSpan(ctx)
	defer func() {
		span.SetAttributes(attribute.Int("sessions.restored", restored))
		endSpan(span, appErr)
	}()

	tokens, appErr := s.sessions.Tokens(ctx)
	if appErr != nil {
		return 0, appErr
	}

	for _, token := range tokens {
		session, found, getErr := s.sessions.Get(ctx, token)
		switch {
		case getErr != nil && getErr.Code != apierrors.ErrCodeMalformedData:
			return restored, getErr
		case getErr != nil || !found:
			s.discard(ctx, token)
		default:
			s.mu.Lock()
			s.cache[token] = session
			s.mu.Unlock()
			restored++
		}
	}

	s.logger.InfoContext(ctx, "Sessions restored",
		slog.String("component", "auth_service"),
		slog.Int("count", restored))
	return restored, nil
}

func (s *Service) discard(ctx context.Context, token string) {
	s.logger.WarnContext(ctx, "Removing unreadable session",
		slog.String("component", "auth_service"))
	if appErr := s.sessions.Delete(ctx, token); appErr != nil {
		s.logger.ErrorContext(ctx, "Failed to remove unreadable session",
			slog.String("component", "auth_service"),
			slog.String("error_code", appErr.Code))
	}
}
