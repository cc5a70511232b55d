package impl

import (
	"context"
	"log/slog"
	"math"

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

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	qrService  service.QRCodeService
	pager      pager
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for RatingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	QRService  service.QRCodeService
	Config     *config.Config
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:  params.TxManager,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		qrService:  params.QRService,
		pager:      newPager(params.Config),
		logger:     params.Logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SubmitRating locks the store, upserts the caller's rating and recomputes the
// aggregate from the rating rows, all in one transaction.
func (srv *ratingService) SubmitRating(ctx context.Context, input *usecase.SubmitRatingInput) (*usecase.SubmitRatingOutput, error) {
	var output *usecase.SubmitRatingOutput

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		storeRepo := factory.NewStoreRepository()
		ratingRepo := factory.NewRatingRepository()

		if _, err := storeRepo.FindByIDForUpdate(ctx, input.StoreID); err != nil {
			return errors.Wrap(err, "failed to lock store")
		}

		value, err := ratingValue(input.Rating)
		if err != nil {
			return err
		}

		rating, created, err := upsertRating(ctx, ratingRepo, input.UserID, input.StoreID, value)
		if err != nil {
			return err
		}

		if _, err := recomputeStoreAggregate(ctx, storeRepo, ratingRepo, input.StoreID); err != nil {
			return err
		}

		output = &usecase.SubmitRatingOutput{Rating: rating, Created: created}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to submit rating")
	}

	srv.log(ctx).Info("Rating submitted",
		slog.Int64("userID", input.UserID),
		slog.Int64("storeID", input.StoreID),
		slog.Int("rating", output.Rating.Rating),
		slog.Bool("created", output.Created),
	)

	return output, nil
}

// SubmitRatingFromQR resolves the store from a scanned payload and submits the rating.
func (srv *ratingService) SubmitRatingFromQR(ctx context.Context, input *usecase.SubmitRatingFromQRInput) (*usecase.SubmitRatingOutput, error) {
	storeID, err := srv.qrService.ParseStoreQR(input.QRData)
	if err != nil {
		return nil, err
	}

	return srv.SubmitRating(ctx, &usecase.SubmitRatingInput{
		UserID:  input.UserID,
		StoreID: storeID,
		Rating:  input.Rating,
	})
}

// ListMyRatings returns the caller's ratings newest first.
func (srv *ratingService) ListMyRatings(ctx context.Context, userID int64, params usecase.ListParams) (*entity.Page[*entity.Rating], error) {
	query, err := srv.pager.query(usecase.ListParams{Page: params.Page, Limit: params.Limit}, ratingListRules)
	if err != nil {
		return nil, err
	}

	ratings, total, err := srv.ratingRepo.FindByUser(ctx, userID, query.Page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return &entity.Page[*entity.Rating]{Items: ratings, PageInfo: entity.NewPageInfo(query.Page, total)}, nil
}

// BrowseStores lists stores by name or address with the caller's own rating attached.
func (srv *ratingService) BrowseStores(ctx context.Context, userID int64, params usecase.ListParams) (*entity.Page[*entity.StoreWithUserRating], error) {
	query, err := srv.pager.query(params, userStoreListRules)
	if err != nil {
		return nil, err
	}

	stores, total, err := srv.storeRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	ids := make([]int64, 0, len(stores))
	for _, s := range stores {
		ids = append(ids, s.ID)
	}

	mine, err := srv.ratingRepo.FindUserRatingsForStores(ctx, userID, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user ratings")
	}

	items := make([]*entity.StoreWithUserRating, 0, len(stores))
	for _, s := range stores {
		item := &entity.StoreWithUserRating{Store: s}
		if v, ok := mine[s.ID]; ok {
			item.UserRating = &v
		}
		items = append(items, item)
	}

	return &entity.Page[*entity.StoreWithUserRating]{Items: items, PageInfo: entity.NewPageInfo(query.Page, total)}, nil
}

// upsertRating updates the existing (user, store) rating in place or inserts a new one.
func upsertRating(ctx context.Context, ratingRepo repository.RatingRepository, userID, storeID int64, value int) (*entity.Rating, bool, error) {
	existing, err := ratingRepo.FindByUserAndStore(ctx, userID, storeID)
	switch {
	case err == nil:
		existing.Rating = value
		if err := ratingRepo.Update(ctx, existing); err != nil {
			return nil, false, errors.Wrap(err, "failed to update rating")
		}

		return existing, false, nil
	case errors.Is(err, domainerrors.ErrRatingNotFound):
		rating := &entity.Rating{UserID: userID, StoreID: storeID, Rating: value}
		if err := ratingRepo.Create(ctx, rating); err != nil {
			return nil, false, errors.Wrap(err, "failed to create rating")
		}

		return rating, true, nil
	default:
		return nil, false, errors.Wrap(err, "failed to find rating")
	}
}

// ratingValue accepts only whole numbers within the star range.
func ratingValue(raw *float64) (int, error) {
	if raw == nil {
		return 0, domainerrors.NewValidationError(domainerrors.FieldViolation{Field: "rating", Message: "is required"})
	}

	v := *raw
	if v != math.Trunc(v) || v < entity.MinRating || v > entity.MaxRating {
		return 0, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "rating",
			Message: "must be an integer between 1 and 5",
		})
	}

	return int(v), nil
}
