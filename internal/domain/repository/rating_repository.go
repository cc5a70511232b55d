package repository

import (
	"context"

	"storerating/internal/domain/entity"
)

// RatingRepository defines the operations for the rating ledger.
type RatingRepository interface {
	// FindByUserAndStore returns the caller's rating for a store or domainerrors.ErrRatingNotFound.
	FindByUserAndStore(ctx context.Context, userID, storeID int64) (*entity.Rating, error)

	// Create inserts a new rating and fills in its ID and timestamps.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update replaces the value of an existing rating and refreshes UpdatedAt.
	Update(ctx context.Context, rating *entity.Rating) error

	// SummarizeByStore returns count and sum over the store's rating rows.
	SummarizeByStore(ctx context.Context, storeID int64) (entity.RatingAggregate, error)

	// FindByStore returns ratings of a store with rater summaries, newest first.
	// A limit <= 0 returns all of them.
	FindByStore(ctx context.Context, storeID int64, limit int) ([]*entity.Rating, error)

	// FindByUser returns one page of the user's ratings with store summaries, newest first.
	FindByUser(ctx context.Context, userID int64, page entity.PageRequest) ([]*entity.Rating, int64, error)

	// FindUserRatingsForStores maps store id to the user's rating value for the given stores.
	FindUserRatingsForStores(ctx context.Context, userID int64, storeIDs []int64) (map[int64]int, error)

	// FindRecentByOwner returns the newest ratings across every store of an owner.
	FindRecentByOwner(ctx context.Context, ownerID int64, limit int) ([]*entity.Rating, error)

	// FindStoreIDsByUser returns the ids of every store the user has rated.
	FindStoreIDsByUser(ctx context.Context, userID int64) ([]int64, error)

	// Count returns the number of ratings.
	Count(ctx context.Context) (int64, error)
}
