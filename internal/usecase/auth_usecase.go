// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storerating/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to self-register. The role is always USER.
type RegisterInput struct {
	Name     string `json:"name" validate:"min=3,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password"`
	Address  string `json:"address" validate:"notblank,max=400"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordInput replaces the caller's password after checking the current one.
type UpdatePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileInput changes the caller's descriptive fields.
type UpdateProfileInput struct {
	Name    string `json:"name" validate:"min=3,max=60"`
	Address string `json:"address" validate:"notblank,max=400"`
}

// --- Output DTOs ---

// AuthOutput returns the issued token and the authenticated user.
type AuthOutput struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the credential operations available to every caller.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	// Authenticate resolves a bearer token to the current user row.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID int64, input *UpdateProfileInput) (*entity.User, error)
	UpdatePassword(ctx context.Context, userID int64, input *UpdatePasswordInput) error
}
