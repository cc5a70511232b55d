// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"storerating/config"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
)

// SpecialCharacters is the set that satisfies the special character rule.
const SpecialCharacters = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

const passwordField = "password"

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.DefaultPasswordStrength()
	if cfg.PasswordStrength != nil {
		policy = cfg.PasswordStrength
	}

	return &bcryptHasher{cost: cost, policy: *policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks the password against the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) []domainerrors.FieldViolation {
	var violations []domainerrors.FieldViolation
	add := func(msg string) {
		violations = append(violations, domainerrors.FieldViolation{Field: passwordField, Message: msg})
	}

	length := utf8.RuneCountInString(password)
	if h.policy.MinLength > 0 && length < h.policy.MinLength {
		add("must be at least " + strconv.Itoa(h.policy.MinLength) + " characters")
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		add("must be at most " + strconv.Itoa(h.policy.MaxLength) + " characters")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case strings.ContainsRune(SpecialCharacters, r):
			hasSpecial = true
		}
	}

	if h.policy.RequireUppercase && !hasUpper {
		add("must contain at least one uppercase letter")
	}
	if h.policy.RequireLowercase && !hasLower {
		add("must contain at least one lowercase letter")
	}
	if h.policy.RequireNumbers && !hasNumber {
		add("must contain at least one number")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		add("must contain at least one special character")
	}

	return violations
}
