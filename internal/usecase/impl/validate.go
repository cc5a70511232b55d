// Package impl contains the implementation of the application's business logic.
package impl

import (
	"strings"

	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
)

// validateInput runs struct tag validation and appends extra violations.
// It returns a *domainerrors.ValidationError when anything failed.
func validateInput(v service.InputValidator, input any, extra ...domainerrors.FieldViolation) error {
	violations := v.Validate(input)
	violations = append(violations, extra...)
	if len(violations) == 0 {
		return nil
	}

	return domainerrors.NewValidationError(violations...)
}

// passwordViolations renames the hasher's policy violations onto field.
func passwordViolations(hasher service.PasswordHasher, field, password string) []domainerrors.FieldViolation {
	violations := hasher.ValidatePasswordStrength(password)
	for i := range violations {
		violations[i].Field = field
	}

	return violations
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
