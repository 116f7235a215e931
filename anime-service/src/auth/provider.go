// Package auth implements the simulated account backend: login and
// registration through a Provider, persisted sessions and login throttling.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/narender/anime-explorer/anime-service/src/models"
	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apirequests"
	"github.com/narender/anime-explorer/common/debugutils"
)

// DefaultAvatar is the placeholder picture given to simulated accounts.
const DefaultAvatar = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMTUwIiBoZWlnaHQ9IjE1MCIgdmlld0JveD0iMCAwIDE1MCAxNTAiIGZpbGw9Im5vbmUiIHhtbG5zPSJodHRwOi8vd3d3LnczLm9yZy8yMDAwL3N2ZyI+CjxyZWN0IHdpZHRoPSIxNTAiIGhlaWdodD0iMTUwIiBmaWxsPSIjOGI1Y2Y2Ii8+CjxjaXJjbGUgY3g9Ijc1IiBjeT0iNjAiIHI9IjIwIiBmaWxsPSJ3aGl0ZSIvPgo8cGF0aCBkPSJNNTAgMTIwQzUwIDEwMCA3MCA4MCA5MCA4MEgxMTBDMTMwIDgwIDE1MCAxMDAgMTUwIDEyMFYxNTBINTBWMTIwWiIgZmlsbD0id2hpdGUiLz4KPC9zdmc+"

// Messages returned for rejected credentials.
const (
	MsgUsernameRequired   = "Username is required"
	MsgRequiredFields     = "All required fields must be completed"
	MsgPasswordsMismatch  = "Passwords do not match"
	MsgPasswordTooShort   = "Password must be at least 8 characters"
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
)

const (
	minPasswordLength = 8
	mockLoginUserID   = "1"
	mockEmailDomain   = "@example.com"
)

// Provider authenticates users. MockProvider is the only implementation.
type Provider interface {
	Login(ctx context.Context, req apirequests.LoginRequest) (models.User, *apierrors.AppError)
	Register(ctx context.Context, req apirequests.RegisterRequest) (models.User, *apierrors.AppError)
}

// MockProvider accepts any non-blank username and any complete registration
// form after an optional delay.
type MockProvider struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewMockProvider(delay time.Duration, logger *slog.Logger) *MockProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &MockProvider{delay: delay, logger: logger}
}

func (p *MockProvider) wait(ctx context.Context, operation, msg string) *apierrors.AppError {
	if err := debugutils.Delay(ctx, p.delay); err != nil {
		return apierrors.NewGenericError(apierrors.ErrCodeRequestTimeout, apierrors.ReasonGenericError,
			http.StatusRequestTimeout, msg).WithCause(err).WithContext("operation", operation)
	}
	return nil
}

func (p *MockProvider) Login(ctx context.Context, req apirequests.LoginRequest) (models.User, *apierrors.AppError) {
	if appErr := p.wait(ctx, "login", MsgLoginFailed); appErr != nil {
		return models.User{}, appErr
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return models.User{}, apierrors.NewBusinessError(apierrors.ErrCodeLoginFailed, apierrors.ErrCodeLoginFailed,
			http.StatusBadRequest, MsgUsernameRequired)
	}

	p.logger.DebugContext(ctx, "Simulated login accepted",
		slog.String("component", "auth_provider"),
		slog.String("username", req.Username))

	return models.User{
		ID:       mockLoginUserID,
		Username: req.Username,
		Email:    req.Username + mockEmailDomain,
		Avatar:   DefaultAvatar,
	}, nil
}

func (p *MockProvider) Register(ctx context.Context, req apirequests.RegisterRequest) (models.User, *apierrors.AppError) {
	if appErr := p.wait(ctx, "register", MsgRegistrationFailed); appErr != nil {
		return models.User{}, appErr
	}

	if msg := checkRegistration(req); msg != "" {
		return models.User{}, apierrors.NewBusinessError(apierrors.ErrCodeRegistrationFailed, apierrors.ErrCodeRegistrationFailed,
			http.StatusBadRequest, msg)
	}

	user := models.User{
		ID:       uuid.NewString(),
		Username: req.Username,
		Email:    req.Email,
		Avatar:   DefaultAvatar,
	}
	p.logger.DebugContext(ctx, "Simulated registration accepted",
		slog.String("component", "auth_provider"),
		slog.String("user_id", user.ID))
	return user, nil
}

// checkRegistration returns the first problem with req, or "".
func checkRegistration(req apirequests.RegisterRequest) string {
	required := []string{
		req.Username, req.Email, req.Password, req.FirstName, req.LastName, req.DateOfBirth,
		req.Country, req.State, req.City, req.Address, req.PostalCode,
		req.Phone, req.EmergencyContact, req.EmergencyPhone,
	}
	for _, value := range required {
		if value == "" {
			return MsgRequiredFields
		}
	}
	if !req.TermsAccepted {
		return MsgRequiredFields
	}
	if req.Password != req.ConfirmPassword {
		return MsgPasswordsMismatch
	}
	if len(req.Password) < minPasswordLength {
		return MsgPasswordTooShort
	}
	return ""
}
