package usecase

import (
	"context"

	"storerating/internal/domain/entity"
)

// StoreOwnerUsecase defines the read operations of store owners over their own stores.
type StoreOwnerUsecase interface {
	Dashboard(ctx context.Context, ownerID int64) (*entity.OwnerDashboard, error)
	ListOwnedStores(ctx context.Context, ownerID int64) ([]*entity.Store, error)
	// GetOwnedStoreRatings fails with ErrStoreNotFound when the store is not owned by ownerID.
	GetOwnedStoreRatings(ctx context.Context, ownerID, storeID int64) (*entity.OwnedStoreRatings, error)
	GenerateStoreQR(ctx context.Context, ownerID, storeID int64) ([]byte, error)
}
