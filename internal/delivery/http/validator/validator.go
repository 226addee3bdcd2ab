// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"regexp"

	playground "github.com/go-playground/validator/v10"

	domainerrors "marketplace/internal/domain/errors"
)

var (
	// emailPattern matches the accepted registration email shape. TLD is
	// limited to 2-6 letters.
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	// phonePattern accepts an optional leading + followed by 10-15 digits.
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// EchoValidator validates request DTOs bound by echo handlers.
type EchoValidator struct {
	validate *playground.Validate
}

// New builds the validator with the domain-specific rules registered.
func New() *EchoValidator {
	validate := playground.New()

	// Registration errors only occur for non-function rules; these are static.
	_ = validate.RegisterValidation("account_email", func(fl playground.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("account_phone", func(fl playground.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return &EchoValidator{validate: validate}
}

// Validate implements echo.Validator. Rule violations surface as the generic
// validation error; field detail stays server-side.
func (v *EchoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidation.WithDetails(err.Error())
	}

	return nil
}
