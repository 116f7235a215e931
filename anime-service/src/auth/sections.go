package auth

import (
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"github.com/narender/anime-explorer/common/apierrors"
	"github.com/narender/anime-explorer/common/apirequests"
	"github.com/narender/anime-explorer/common/validator"
)

// Registration form sections, in the order they are filled in.
const (
	SectionBasic       = "basic"
	SectionResidence   = "residence"
	SectionContact     = "contact"
	SectionPreferences = "preferences"
)

// ReasonUnknownSection is returned for a section id that does not exist.
const ReasonUnknownSection = "UNKNOWN_FORM_SECTION"

var sectionFields = map[string][]string{
	SectionBasic:       {"firstName", "lastName", "username", "email", "password", "confirmPassword", "dateOfBirth"},
	SectionResidence:   {"country", "state", "city", "address", "postalCode"},
	SectionContact:     {"phone", "emergencyContact", "emergencyPhone"},
	SectionPreferences: {"termsAccepted"},
}

// Sections lists the section ids.
func Sections() []string {
	return []string{SectionBasic, SectionResidence, SectionContact, SectionPreferences}
}

// SectionFields returns the json names of the fields in section.
func SectionFields(section string) ([]string, bool) {
	fields, ok := sectionFields[section]
	return fields, ok
}

// ValidateSection validates only the fields of section. The returned map is
// empty when the section is valid.
func ValidateSection(section string, form apirequests.RegisterRequest) (map[string]string, *apierrors.AppError) {
	fields, ok := sectionFields[section]
	if !ok {
		return nil, apierrors.NewBusinessError(apierrors.ErrCodeRequestValidation, ReasonUnknownSection,
			http.StatusNotFound, fmt.Sprintf("Unknown form section %q", section))
	}
	all := validator.FieldErrors(form)
	return lo.PickByKeys(all, fields), nil
}
