// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storerating/internal/domain/entity"
)

// UserRepository defines the standard operations for user persistence.
// Lookups of absent users fail with domainerrors.ErrUserNotFound.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByIDForUpdate retrieves a user and holds its row lock until the transaction ends.
	// New ratings referencing a locked user wait for the lock.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user and fills in its ID and timestamps.
	// A duplicate email fails with domainerrors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies name, email, address, role and password hash of an existing user.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user; owned stores and the user's ratings cascade.
	Delete(ctx context.Context, id int64) error

	// List returns one page of users matching the query and the total match count.
	List(ctx context.Context, query entity.ListQuery) ([]*entity.User, int64, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int64, error)
}
