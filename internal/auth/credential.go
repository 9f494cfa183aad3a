package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/ErlanBelekov/timesheet/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderUserEmail     = "X-User-Email"
	HeaderUserMobile    = "X-User-Mobile"

	bearerPrefix = "Bearer "
)

// TagEmail is the validator tag for addresses of the form local@domain.tld.
// validator's built-in "email" accepts addresses without a TLD.
const TagEmail = "tld_email"

// Domain labels may contain hyphens but not start with one.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@.-][^\s@.]*(\.[^\s@.-][^\s@.]*)+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterValidations installs the tags used by this package on v so request
// bodies bound by gin can share them.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation(TagEmail, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("register %s: %w", TagEmail, err)
	}
	return nil
}

func ValidEmail(s string) bool {
	return validate.Var(s, "required,"+TagEmail) == nil
}

// ValidMobile accepts E.164 numbers: a plus sign followed by up to 15 digits.
func ValidMobile(s string) bool {
	return validate.Var(s, "required,e164") == nil
}

func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(h http.Header) (string, error) {
	values := h.Values(HeaderAuthorization)
	if len(values) == 0 {
		return "", domain.ErrAuthHeaderMissing
	}

	token, ok := strings.CutPrefix(values[0], bearerPrefix)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", domain.ErrAuthHeaderFormat
	}
	return token, nil
}

func EmailHeader(h http.Header) (string, error) {
	values := h.Values(HeaderUserEmail)
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return "", domain.ErrEmailHeaderMissing
	}

	email := NormalizeEmail(values[0])
	if !ValidEmail(email) {
		return "", domain.ErrEmailFormat
	}
	return email, nil
}

func MobileHeader(h http.Header) (string, error) {
	values := h.Values(HeaderUserMobile)
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return "", domain.ErrMobileHeaderMissing
	}

	mobile := strings.TrimSpace(values[0])
	if !ValidMobile(mobile) {
		return "", domain.ErrMobileFormat
	}
	return mobile, nil
}
