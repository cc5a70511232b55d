package impl

import (
	"context"
	"log/slog"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// storeOwnerService implements the StoreOwnerUsecase interface.
type storeOwnerService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	qrService  service.QRCodeService
	logger     *slog.Logger
}

// StoreOwnerServiceParams holds dependencies for StoreOwnerService, injected by Fx.
type StoreOwnerServiceParams struct {
	fx.In

	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	QRService  service.QRCodeService
	Logger     *slog.Logger
}

// NewStoreOwnerService is the constructor for storeOwnerService.
func NewStoreOwnerService(params StoreOwnerServiceParams) usecase.StoreOwnerUsecase {
	return &storeOwnerService{
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		qrService:  params.QRService,
		logger:     params.Logger,
	}
}

func (srv *storeOwnerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard summarizes every store of the owner.
func (srv *storeOwnerService) Dashboard(ctx context.Context, ownerID int64) (*entity.OwnerDashboard, error) {
	stores, err := srv.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owned stores")
	}

	var totalRatings int64
	for _, s := range stores {
		totalRatings += s.RatingsCount
	}

	recent, err := srv.ratingRepo.FindRecentByOwner(ctx, ownerID, recentRatingsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find recent ratings")
	}

	return &entity.OwnerDashboard{
		Stores: stores,
		Stats: entity.OwnerStats{
			TotalStores:      len(stores),
			TotalRatings:     totalRatings,
			OverallAvgRating: entity.WeightedAverage(stores),
		},
		RecentRatings: recent,
	}, nil
}

// ListOwnedStores returns the owner's stores newest first.
func (srv *storeOwnerService) ListOwnedStores(ctx context.Context, ownerID int64) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owned stores")
	}

	return stores, nil
}

// GetOwnedStoreRatings returns every rating of one owned store.
func (srv *storeOwnerService) GetOwnedStoreRatings(ctx context.Context, ownerID, storeID int64) (*entity.OwnedStoreRatings, error) {
	store, err := srv.ownedStore(ctx, ownerID, storeID)
	if err != nil {
		return nil, err
	}

	ratings, err := srv.ratingRepo.FindByStore(ctx, storeID, 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store ratings")
	}

	return &entity.OwnedStoreRatings{Store: store, Ratings: ratings}, nil
}

// GenerateStoreQR renders the rating QR code of an owned store.
func (srv *storeOwnerService) GenerateStoreQR(ctx context.Context, ownerID, storeID int64) ([]byte, error) {
	if _, err := srv.ownedStore(ctx, ownerID, storeID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateStoreQR(storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	srv.log(ctx).Debug("Store QR generated", slog.Int64("storeID", storeID))

	return png, nil
}

// ownedStore hides stores of other owners behind ErrStoreNotFound.
func (srv *storeOwnerService) ownedStore(ctx context.Context, ownerID, storeID int64) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store")
	}

	if store.OwnerID != ownerID {
		return nil, domainerrors.ErrStoreNotFound.WrapMessage("store is not owned by caller")
	}

	return store, nil
}
