// Package validation holds the contact form rules.
//
// Rules run in a fixed order and the first failure wins, so a caller always
// gets exactly one message back.
package validation

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/corazor/contact-service/pkg/util"
)

// MinMessageLength is the minimum trimmed length of a project description,
// counted in characters (runes).
const MinMessageLength = 10

// MinPhoneDigits is the minimum count of digits in a phone number.
const MinPhoneDigits = 10

// whitespaceClass is the ECMAScript whitespace and line terminator set used
// by browsers for \s and String.prototype.trim. RE2's \s is ASCII only.
const whitespaceClass = `\t\n\x0B\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

var (
	emailPattern = regexp.MustCompile(`^[^` + whitespaceClass + `@]+@[^` + whitespaceClass + `@]+\.[^` + whitespaceClass + `@]+$`)
	phonePattern = regexp.MustCompile(`^[\d` + whitespaceClass + `\-\+\(\)]+$`)
)

// ContactInput is the subset of a submission the rules look at.
type ContactInput struct {
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Phone   string `validate:"required"`
	Company string
	Message string `validate:"required"`
	// NonString lists fields that arrived as JSON values other than strings
	// and were converted to text. Such a phone or message is rejected as an
	// unexpected payload once its text-only rule is reached.
	NonString []string
}

func (in ContactInput) isNonString(field string) bool {
	return slices.Contains(in.NonString, field)
}

// ContactValidator applies the contact form rules.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator registers the custom tags and returns a validator.
func NewContactValidator() *ContactValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails on empty tag names or nil funcs.
	_ = v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("contact_phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("min_digits", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return CountDigits(fl.Field().String()) >= want
	})
	_ = v.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		want, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(TrimSpace(fl.Field().String())) >= want
	})
	return &ContactValidator{validate: v}
}

// Validate returns nil or a validation DomainError carrying the message of the
// first rule that failed.
func (cv *ContactValidator) Validate(in ContactInput) error {
	if err := cv.validate.Struct(in); err != nil {
		return apperrors.NewValidationError(apperrors.MsgRequiredFields, map[string]any{
			"fields": failedFields(err),
		})
	}
	if err := cv.validate.Var(in.Email, "contact_email"); err != nil {
		return apperrors.NewValidationError(apperrors.MsgInvalidEmail, map[string]any{"field": "email"})
	}
	if err := cv.validate.Var(in.Phone, "contact_phone"); err != nil {
		return apperrors.NewValidationError(apperrors.MsgInvalidPhone, map[string]any{"field": "phone"})
	}
	if in.isNonString("phone") {
		return apperrors.NewInternalError(errors.New("phone is not a string"))
	}
	if err := cv.validate.Var(in.Phone, "min_digits="+strconv.Itoa(MinPhoneDigits)); err != nil {
		return apperrors.NewValidationError(apperrors.MsgInvalidPhone, map[string]any{"field": "phone"})
	}
	if in.isNonString("message") {
		return apperrors.NewInternalError(errors.New("message is not a string"))
	}
	if err := cv.validate.Var(in.Message, "trimmed_min="+strconv.Itoa(MinMessageLength)); err != nil {
		return apperrors.NewValidationError(apperrors.MsgShortMessage, map[string]any{"field": "message"})
	}
	return nil
}

// ValidEmail checks the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone accepts digits, whitespace, '+', '-' and parentheses with at least
// MinPhoneDigits digits.
func ValidPhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}
	return CountDigits(phone) >= MinPhoneDigits
}

// TrimSpace strips leading and trailing ECMAScript whitespace, which unlike
// strings.TrimSpace includes U+FEFF and excludes U+0085.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// IsSpace reports whether r is in the ECMAScript whitespace set.
func IsSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// CountDigits counts ASCII digits in s.
func CountDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

func failedFields(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fields
}
