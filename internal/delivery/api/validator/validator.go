// Package validator adapts the input validator to echo.
package validator

import (
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
	"storerating/internal/infra/validation"

	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validator service.InputValidator
}

// New returns an echo.Validator reporting failures as *domainerrors.ValidationError.
func New() echo.Validator {
	return &echoValidator{validator: validation.New()}
}

func (v *echoValidator) Validate(i any) error {
	if violations := v.validator.Validate(i); len(violations) > 0 {
		return domainerrors.NewValidationError(violations...)
	}

	return nil
}
