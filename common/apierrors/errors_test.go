package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusinessError(t *testing.T) {
	err := NewBusinessError("E1", "RATE_LIMIT", http.StatusTooManyRequests, "slow down")

	assert.Equal(t, KindBusiness, err.Kind)
	assert.True(t, err.IsBusiness())
	assert.False(t, err.IsGeneric())
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus())
	assert.Contains(t, err.Error(), "RATE_LIMIT")
}

func TestNewUnexpectedError(t *testing.T) {
	cause := errors.New("boom")
	err := NewUnexpectedError(cause)

	assert.Equal(t, KindGeneric, err.Kind)
	assert.Equal(t, ErrCodeUnexpected, err.Code)
	assert.Equal(t, ReasonUnexpectedError, err.Reason)
	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, "Unexpected error", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestHTTPStatusFallback(t *testing.T) {
	err := NewGenericError(ErrCodeUnknown, ReasonGenericError, 0, "x")
	assert.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestAsAndContext(t *testing.T) {
	base := NewBusinessError(ErrCodeNoFavorites, ErrCodeNoFavorites, http.StatusNotFound, "none").
		WithContext("user", "u1")
	wrapped := fmt.Errorf("outer: %w", base)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, base, got)
	assert.Equal(t, "u1", got.Context["user"])

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}
