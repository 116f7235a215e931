package validator

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/narender/anime-explorer/common/apierrors"
)

// ReasonValidationFailed is the reason attached to request validation failures.
const ReasonValidationFailed = "VALIDATION_FAILED"

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Singleton validator instance
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return v
}

// Engine returns the shared go-playground validator.
func Engine() *validator.Validate {
	return validate
}

// FieldErrors validates payload and returns a message per failing field,
// keyed by the field's json name. It returns nil when payload is valid.
func FieldErrors(payload any) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(vErrs))
	for _, vErr := range vErrs {
		if _, seen := out[vErr.Field()]; !seen {
			out[vErr.Field()] = messageFor(vErr)
		}
	}
	return out
}

// ValidateRequest performs validation on the struct payload.
// Returns nil on success, or a 400 AppError listing the failing fields.
func ValidateRequest(payload any) *apierrors.AppError {
	fields := FieldErrors(payload)
	if fields == nil {
		return nil
	}
	parts := make([]string, 0, len(fields))
	for field, msg := range fields {
		parts = append(parts, fmt.Sprintf("%s %s", field, msg))
	}
	slices.Sort(parts)
	return apierrors.NewBusinessError(apierrors.ErrCodeRequestValidation, ReasonValidationFailed,
		http.StatusBadRequest, "Validation failed: "+strings.Join(parts, "; ")).
		WithContext("fields", fields)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "username":
		return "may only contain letters, numbers and underscores"
	case "eqfield":
		return fmt.Sprintf("must match %s", fe.Param())
	case "eq":
		if fe.Param() == "true" {
			return "must be accepted"
		}
		return fmt.Sprintf("must equal %s", fe.Param())
	case "gte", "gt", "lte", "lt":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed validation on '%s'", fe.Tag())
	}
}
