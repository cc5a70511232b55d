package impl

import (
	"context"
	"log/slog"
	"strings"

	"storerating/config"
	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/domain/service"
	"storerating/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// recentRatingsLimit bounds the ratings embedded in store and dashboard views.
const recentRatingsLimit = 10

// storeService implements the StoreUsecase interface.
type storeService struct {
	userRepo         repository.UserRepository
	storeRepo        repository.StoreRepository
	ratingRepo       repository.RatingRepository
	validator        service.InputValidator
	pager            pager
	requireOwnerRole bool
	logger           *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	Validator  service.InputValidator
	Config     *config.Config
	Logger     *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	requireOwnerRole := true
	if params.Config != nil && params.Config.Stores != nil {
		requireOwnerRole = params.Config.Stores.RequireOwnerRole
	}

	return &storeService{
		userRepo:         params.UserRepo,
		storeRepo:        params.StoreRepo,
		ratingRepo:       params.RatingRepo,
		validator:        params.Validator,
		pager:            newPager(params.Config),
		requireOwnerRole: requireOwnerRole,
		logger:           params.Logger,
	}
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListStores searches name, email and address. Listing never writes.
func (srv *storeService) ListStores(ctx context.Context, params usecase.ListParams) (*entity.Page[*entity.Store], error) {
	query, err := srv.pager.query(params, adminStoreListRules)
	if err != nil {
		return nil, err
	}

	stores, total, err := srv.storeRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return &entity.Page[*entity.Store]{Items: stores, PageInfo: entity.NewPageInfo(query.Page, total)}, nil
}

// GetStore returns a store with its owner and most recent ratings.
func (srv *storeService) GetStore(ctx context.Context, id int64) (*entity.StoreDetail, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store")
	}

	ratings, err := srv.ratingRepo.FindByStore(ctx, id, recentRatingsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store ratings")
	}

	return &entity.StoreDetail{Store: store, RecentRatings: ratings}, nil
}

// CreateStore adds a store with an empty aggregate.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.StoreInput) (*entity.Store, error) {
	normalizeStoreInput(input)
	if err := validateInput(srv.validator, input); err != nil {
		return nil, err
	}

	owner, err := srv.checkOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if _, err := srv.storeRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrStoreAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrStoreNotFound) {
		return nil, errors.Wrap(err, "failed to check existing store email")
	}

	store := &entity.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: owner.ID,
		Owner:   owner.Summary(),
	}
	if err := srv.storeRepo.Create(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Info("Store created", slog.Int64("storeID", store.ID), slog.Int64("ownerID", owner.ID))

	return store, nil
}

// UpdateStore edits descriptive fields and owner. The aggregate is left untouched.
func (srv *storeService) UpdateStore(ctx context.Context, id int64, input *usecase.StoreInput) (*entity.Store, error) {
	normalizeStoreInput(input)
	if err := validateInput(srv.validator, input); err != nil {
		return nil, err
	}

	store, err := srv.storeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store")
	}

	owner, err := srv.checkOwner(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if input.Email != store.Email {
		other, err := srv.storeRepo.FindByEmail(ctx, input.Email)
		if err == nil && other.ID != id {
			return nil, domainerrors.ErrStoreAlreadyExists
		}
		if err != nil && !errors.Is(err, domainerrors.ErrStoreNotFound) {
			return nil, errors.Wrap(err, "failed to check existing store email")
		}
	}

	store.Name = input.Name
	store.Email = input.Email
	store.Address = input.Address
	store.OwnerID = owner.ID
	store.Owner = owner.Summary()
	if err := srv.storeRepo.Update(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store")
	}

	return store, nil
}

// DeleteStore removes a store and, by cascade, its ratings.
func (srv *storeService) DeleteStore(ctx context.Context, id int64) error {
	if err := srv.storeRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete store")
	}

	srv.log(ctx).Info("Store deleted", slog.Int64("storeID", id))

	return nil
}

// checkOwner loads the owner and enforces the owner role when configured.
func (srv *storeService) checkOwner(ctx context.Context, ownerID int64) (*entity.User, error) {
	owner, err := srv.userRepo.FindByID(ctx, ownerID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, domainerrors.ErrOwnerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner")
	}

	if srv.requireOwnerRole && owner.Role != entity.RoleStoreOwner {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "owner_id",
			Message: "owner must have the STORE_OWNER role",
		})
	}

	return owner, nil
}

func normalizeStoreInput(input *usecase.StoreInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)
}
