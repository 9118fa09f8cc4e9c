// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/stockbar/stockbar/internal/errors"
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NonNegative validates that a float value is zero or greater. Used for the
// organization pricing step fields, which may be zero but never negative.
type NonNegative struct{}

// Validate checks the value against the rule.
func (NonNegative) Validate(value interface{}) error {
	f, ok := value.(float64)
	if !ok {
		return validation.NewError("validation_non_negative", "must be a number")
	}
	if f < 0 {
		return validation.NewError("validation_non_negative", "must be zero or greater")
	}
	return nil
}
