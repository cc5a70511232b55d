package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/config"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/service"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{SecretKey: config.SecretKeyConfig{Access: testSecret}})
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	user := &entity.User{ID: 42, Email: "owner@example.com", Role: entity.RoleStoreOwner}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, entity.RoleStoreOwner, claims.Role)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	issued := time.Now().Add(-25 * time.Hour)
	svc.now = func() time.Time { return issued }

	token, err := svc.GenerateToken(&entity.User{ID: 1, Role: entity.RoleUser})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_RejectsInvalidTokens(t *testing.T) {
	svc := newTestJWTService(t)
	claims := service.Claims{
		UserID: 1,
		Role:   entity.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	wrongSecret, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	otherHMAC, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, service.Claims{UserID: 1}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := map[string]string{
		"malformed":    "clearly-not-a-jwt-token-format",
		"empty":        "",
		"wrong secret": wrongSecret,
		"alg HS512":    otherHMAC,
		"alg none":     unsigned,
		"no expiry":    noExpiry,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := svc.ValidateToken(token)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
		})
	}
}
