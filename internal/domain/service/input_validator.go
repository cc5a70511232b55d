package service

import domainerrors "storerating/internal/domain/errors"

// InputValidator checks struct tags on request inputs.
type InputValidator interface {
	// Validate returns one violation per failing field, or nil.
	Validate(input any) []domainerrors.FieldViolation
}
