package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storerating/internal/domain/entity"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID int64       `json:"userId"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateToken creates a signed access token for the user.
	GenerateToken(user *entity.User) (string, error)

	// ValidateToken checks signature, algorithm and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// TokenTTL returns the lifetime of issued tokens.
	TokenTTL() time.Duration
}
