package repository

import (
	"context"

	"storerating/internal/domain/entity"
)

// StoreRepository defines the operations for store persistence.
// Lookups of absent stores fail with domainerrors.ErrStoreNotFound.
type StoreRepository interface {
	// FindByID retrieves a store with its owner summary.
	FindByID(ctx context.Context, id int64) (*entity.Store, error)

	// FindByIDForUpdate retrieves a store and holds a row lock until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id int64) (*entity.Store, error)

	// FindByEmail retrieves a store by its unique email.
	FindByEmail(ctx context.Context, email string) (*entity.Store, error)

	// Create persists a new store with a zero aggregate. A duplicate email
	// fails with domainerrors.ErrStoreAlreadyExists.
	Create(ctx context.Context, store *entity.Store) error

	// Update modifies name, email, address and owner. Aggregate columns are untouched.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store; its ratings cascade.
	Delete(ctx context.Context, id int64) error

	// List returns one page of stores matching the query and the total match count.
	List(ctx context.Context, query entity.ListQuery) ([]*entity.Store, int64, error)

	// FindByOwner returns every store owned by ownerID, newest first.
	FindByOwner(ctx context.Context, ownerID int64) ([]*entity.Store, error)

	// LockByIDs row-locks the given stores in ascending id order and returns the ids that exist.
	LockByIDs(ctx context.Context, ids []int64) ([]int64, error)

	// UpdateAggregate persists the derived rating columns of a store.
	UpdateAggregate(ctx context.Context, id int64, avg float64, count int64) error

	// Count returns the number of stores.
	Count(ctx context.Context) (int64, error)
}
