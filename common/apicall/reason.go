package apicall

import (
	"errors"

	"github.com/narender/anime-explorer/common/apierrors"
)

// GetReasonMessage maps the reason of a failure to a user message. It reads
// the reason from an API-shaped error body, or from a business AppError.
// The second result is false when there is no reason or it is not mapped.
func GetReasonMessage(err error, errorMap map[string]string) (string, bool) {
	reason := reasonOf(err)
	if reason == "" {
		return "", false
	}
	msg, ok := errorMap[reason]
	if !ok || msg == "" {
		return "", false
	}
	return msg, true
}

func reasonOf(err error) string {
	if err == nil {
		return ""
	}
	var reqErr RequestError
	if errors.As(err, &reqErr) {
		if resp := reqErr.APIResponse(); resp != nil && resp.Data != nil && resp.Data.Reason != "" {
			return resp.Data.Reason
		}
	}
	if appErr, ok := apierrors.As(err); ok && appErr.IsBusiness() {
		return appErr.Reason
	}
	return ""
}
