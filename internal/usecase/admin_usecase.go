package usecase

import (
	"context"

	"storerating/internal/domain/entity"
)

// CreateUserInput defines an admin-created account with any role.
type CreateUserInput struct {
	Name     string `json:"name" validate:"min=3,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password"`
	Address  string `json:"address" validate:"notblank,max=400"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserInput defines an admin edit. An empty Password keeps the current one.
type UpdateUserInput struct {
	Name     string `json:"name" validate:"min=3,max=60"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password"`
	Address  string `json:"address" validate:"notblank,max=400"`
	Role     string `json:"role" validate:"required"`
}

// AdminUsecase defines the user management and dashboard operations of administrators.
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*entity.AdminDashboard, error)
	ListUsers(ctx context.Context, params ListParams) (*entity.Page[*entity.User], error)
	GetUser(ctx context.Context, id int64) (*entity.UserDetail, error)
	CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	UpdateUser(ctx context.Context, id int64, input *UpdateUserInput) (*entity.User, error)
	// DeleteUser removes targetID on behalf of actingID and recomputes every store the target rated.
	DeleteUser(ctx context.Context, actingID, targetID int64) error
}
