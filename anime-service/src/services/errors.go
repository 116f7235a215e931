package services

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/narender/anime-explorer/common/apicall"
	"github.com/narender/anime-explorer/common/apierrors"
)

// Reasons understood by the anime module.
const (
	ReasonAnimeNotFound                  = "ANIME_NOT_FOUND"
	ReasonAnimeSearchFailed              = "ANIME_SEARCH_FAILED"
	ReasonAnimeDetailsFailed             = "ANIME_DETAILS_FAILED"
	ReasonAuthenticationFailedAttemptOne = "AUTHENTICATION_FAILED_ATTEMPT_ONE"
	ReasonAuthenticationFailedAttemptTwo = "AUTHENTICATION_FAILED_ATTEMPT_TWO"
	ReasonRateLimitExceeded              = "RATE_LIMIT_EXCEEDED"
	ReasonDefault                        = "DEFAULT"
)

// AnimeErrorMessages maps anime reasons to user messages.
var AnimeErrorMessages = map[string]string{
	ReasonAnimeNotFound:                  "Anime not found",
	ReasonAnimeSearchFailed:              "Failed to search anime",
	ReasonAnimeDetailsFailed:             "Failed to load anime details",
	ReasonAuthenticationFailedAttemptOne: "Authentication error. Try again",
	ReasonAuthenticationFailedAttemptTwo: "Authentication error. Check your credentials",
	ReasonRateLimitExceeded:              "Too many requests. Try again in a few minutes",
	ReasonDefault:                        "Anime module error",
}

// MessageFor returns the user message for failure, falling back to the
// module default.
func MessageFor(failure error) string {
	if msg, ok := apicall.GetReasonMessage(failure, AnimeErrorMessages); ok {
		return msg
	}
	return AnimeErrorMessages[ReasonDefault]
}

type jikanError struct {
	Status  int    `json:"status"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error"`

	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// DecodeJikanError reads a Jikan error document. Jikan does not send
// reasons, so not-found and rate-limit statuses are given the matching
// anime reason; a reason sent by the server is kept as is.
func DecodeJikanError(status int, body []byte) *apicall.ErrorBody {
	var je jikanError
	_ = json.Unmarshal(body, &je)

	out := &apicall.ErrorBody{Code: je.Code, Reason: je.Reason, Message: je.Message}
	if out.Code == "" {
		out.Code = je.Type
	}
	if out.Reason != "" {
		return out
	}
	switch status {
	case http.StatusNotFound:
		out.Reason = ReasonAnimeNotFound
	case http.StatusTooManyRequests:
		out.Reason = ReasonRateLimitExceeded
	}
	return out
}

func invalidID(id int) *apierrors.AppError {
	return apierrors.NewBusinessError(apierrors.ErrCodeInvalidAnimeID, ReasonAnimeNotFound,
		http.StatusBadRequest, fmt.Sprintf("invalid anime id %d", id)).
		WithContext("anime_id", id)
}
