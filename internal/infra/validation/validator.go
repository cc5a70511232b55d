// Package validation checks request inputs against their struct tags.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
)

type inputValidator struct {
	validate *validator.Validate
}

// New returns a go-playground backed InputValidator that reports json field names.
func New() service.InputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &inputValidator{validate: v}
}

// Validate returns one violation per failing field, in struct order.
func (iv *inputValidator) Validate(input any) []domainerrors.FieldViolation {
	err := iv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []domainerrors.FieldViolation{{Field: "body", Message: err.Error()}}
	}

	violations := make([]domainerrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}

	return violations
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}
