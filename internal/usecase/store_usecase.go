package usecase

import (
	"context"

	"storerating/internal/domain/entity"
)

// StoreInput defines the writable fields of a store.
type StoreInput struct {
	Name    string `json:"name" validate:"min=20,max=60"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Address string `json:"address" validate:"notblank,max=400"`
	OwnerID int64  `json:"owner_id" validate:"gt=0"`
}

// StoreUsecase defines the store directory operations of administrators.
type StoreUsecase interface {
	ListStores(ctx context.Context, params ListParams) (*entity.Page[*entity.Store], error)
	GetStore(ctx context.Context, id int64) (*entity.StoreDetail, error)
	CreateStore(ctx context.Context, input *StoreInput) (*entity.Store, error)
	UpdateStore(ctx context.Context, id int64, input *StoreInput) (*entity.Store, error)
	DeleteStore(ctx context.Context, id int64) error
}
