package validator

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narender/anime-explorer/common/apierrors"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3,max=20,username"`
	Email    string `json:"email" validate:"required,email"`
	Terms    bool   `json:"termsAccepted" validate:"eq=true"`
}

func TestValidateRequest_Valid(t *testing.T) {
	assert.Nil(t, ValidateRequest(signup{Username: "spike_s", Email: "spike@bebop.io", Terms: true}))
	assert.Nil(t, FieldErrors(signup{Username: "abc", Email: "a@b.co", Terms: true}))
}

func TestValidateRequest_Invalid(t *testing.T) {
	appErr := ValidateRequest(signup{Username: "no spaces", Email: "nope"})
	require.NotNil(t, appErr)
	assert.Equal(t, apierrors.ErrCodeRequestValidation, appErr.Code)
	assert.Equal(t, ReasonValidationFailed, appErr.Reason)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
	assert.True(t, appErr.IsBusiness())

	fields, ok := appErr.Context["fields"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "may only contain letters, numbers and underscores", fields["username"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Equal(t, "must be accepted", fields["termsAccepted"])
	assert.Contains(t, appErr.Message, "Validation failed: ")
}

func TestFieldErrors_Messages(t *testing.T) {
	cases := []struct {
		name  string
		input signup
		field string
		want  string
	}{
		{"required", signup{Email: "a@b.co", Terms: true}, "username", "is required"},
		{"too short", signup{Username: "ab", Email: "a@b.co", Terms: true}, "username", "must be at least 3 characters"},
		{"too long", signup{Username: "abcdefghijklmnopqrstu", Email: "a@b.co", Terms: true}, "username", "must be at most 20 characters"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := FieldErrors(tc.input)
			assert.Len(t, fields, 1)
			assert.Equal(t, tc.want, fields[tc.field])
		})
	}
}

func TestEngine(t *testing.T) {
	assert.NoError(t, Engine().Var("mal_user_1", "username"))
	assert.Error(t, Engine().Var("bad-name", "username"))
}
