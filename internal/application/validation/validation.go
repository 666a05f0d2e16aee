// Package validation checks and normalizes inbound payloads before they reach
// the application services.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"catalog-service/internal/application/command"
	"catalog-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateProduct trims name and category, then checks the product rules.
// On failure the zero value is returned alongside the error.
func ValidateProduct(in command.ProductInput) (command.ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		in.Category = &category
	}

	if err := check(in); err != nil {
		return command.ProductInput{}, err
	}
	return in, nil
}

// ValidateUser trims both fields and lower-cases the email.
func ValidateUser(in command.CreateUserCommand) (command.CreateUserCommand, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := check(in); err != nil {
		return command.CreateUserCommand{}, err
	}
	return in, nil
}

// TypeMismatch reports a JSON field that decoded to the wrong type. expected
// carries its article, e.g. "a number" or "an integer".
func TypeMismatch(field, expected string) *domain.ValidationError {
	return domain.NewValidationError(field, fmt.Sprintf("%q must be %s", field, expected))
}

// NotAllowed reports a body key the endpoint does not accept.
func NotAllowed(field string) *domain.ValidationError {
	return domain.NewValidationError(field, fmt.Sprintf("%q is not allowed", field))
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return describe(fieldErrs[0])
	}
	return domain.NewValidationError("", err.Error())
}

func describe(fe validator.FieldError) *domain.ValidationError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%q is required", field)
	case "email":
		msg = fmt.Sprintf("%q must be a valid email", field)
	default:
		msg = fmt.Sprintf("%q failed the %q rule", field, fe.Tag())
	}
	return domain.NewValidationError(field, msg)
}
