package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"golang.org/x/exp/constraints"
)

// FieldError is a configuration value that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validator collects the FieldErrors of one Config.
type Validator struct {
	errs []error
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, &FieldError{Field: field, Message: message})
}

// RequireNonEmpty rejects blank strings.
func (v *Validator) RequireNonEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "cannot be empty")
	}
}

func (v *Validator) RequireOneOf(field, value string, allowed []string) {
	if !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	}
}

// RequireAbsoluteURL accepts http and https URLs that name a host.
func (v *Validator) RequireAbsoluteURL(field, value string) {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		v.AddError(field, "must be an absolute http(s) URL")
	}
}

// RequireInRange checks min <= value <= max.
func RequireInRange[T constraints.Ordered](v *Validator, field string, value, min, max T) {
	if value < min || value > max {
		v.AddError(field, fmt.Sprintf("must be between %v and %v", min, max))
	}
}

// Errors returns the collected errors in the order they were found.
func (v *Validator) Errors() []error {
	return v.errs
}

// Err joins the collected errors. It is nil when there are none.
func (v *Validator) Err() error {
	return errors.Join(v.errs...)
}
