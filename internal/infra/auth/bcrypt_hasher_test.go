package auth

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storerating/config"
	domainerrors "storerating/internal/domain/errors"
)

func newTestHasher(policy *config.PasswordStrengthConfig) *bcryptHasher {
	cfg := &config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: policy,
	}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher(nil)
	password := "Strong1!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("Wrong1!x", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Test with invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	hasher := newTestHasher(nil)

	hash, err := hasher.Hash("Strong1!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestNewBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 1}}).(*bcryptHasher)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
	assert.Equal(t, *config.DefaultPasswordStrength(), hasher.policy)
}

func TestBcryptHasher_HashTooLong(t *testing.T) {
	hasher := newTestHasher(nil)

	_, err := hasher.Hash(string(make([]byte, 100)))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := newTestHasher(nil)

	tests := []struct {
		name     string
		password string
		wantMsgs []string
	}{
		{name: "minimal strong", password: "Strong1!"},
		{name: "sixteen chars", password: "Abcdefghijklmno!"},
		{name: "every special works", password: `Abcdefg"`},
		{
			name:     "weakpass",
			password: "weakpass",
			wantMsgs: []string{"must contain at least one uppercase letter", "must contain at least one special character"},
		},
		{
			name:     "too short",
			password: "Ab!",
			wantMsgs: []string{"must be at least 8 characters"},
		},
		{
			name:     "too long",
			password: "Abcdefghijklmnop!",
			wantMsgs: []string{"must be at most 16 characters"},
		},
		{
			name:     "no special",
			password: "Abcdefgh",
			wantMsgs: []string{"must contain at least one special character"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			violations := hasher.ValidatePasswordStrength(tt.password)
			msgs := make([]string, 0, len(violations))
			for _, v := range violations {
				assert.Equal(t, "password", v.Field)
				msgs = append(msgs, v.Message)
			}
			if len(tt.wantMsgs) == 0 {
				assert.Empty(t, msgs)
				return
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestBcryptHasher_OptionalRules(t *testing.T) {
	policy := config.DefaultPasswordStrength()
	policy.RequireNumbers = true
	policy.RequireLowercase = true
	hasher := newTestHasher(policy)

	assert.Empty(t, hasher.ValidatePasswordStrength("Strong1!"))
	assert.Len(t, hasher.ValidatePasswordStrength("STRONGX!"), 2)
}
