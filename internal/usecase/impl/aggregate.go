package impl

import (
	"context"

	"storerating/internal/domain/entity"
	"storerating/internal/domain/repository"

	"github.com/pkg/errors"
)

// recomputeStoreAggregate rebuilds a store's average and count from its rating rows.
// Callers must hold the store's row lock inside the current transaction.
func recomputeStoreAggregate(
	ctx context.Context,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	storeID int64,
) (entity.RatingAggregate, error) {
	agg, err := ratingRepo.SummarizeByStore(ctx, storeID)
	if err != nil {
		return entity.RatingAggregate{}, errors.Wrap(err, "failed to summarize store ratings")
	}

	if err := storeRepo.UpdateAggregate(ctx, storeID, agg.Average(), agg.Count); err != nil {
		return entity.RatingAggregate{}, errors.Wrap(err, "failed to persist store aggregate")
	}

	return agg, nil
}
