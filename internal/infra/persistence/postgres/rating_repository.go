package postgres

import (
	"context"
	"time"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements the repository.RatingRepository interface.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{
		db: db,
	}
}

// FindByUserAndStore retrieves the single rating a user gave a store.
func (repo *ratingRepository) FindByUserAndStore(ctx context.Context, userID, storeID int64) (*entity.Rating, error) {
	var ratingM model.RatingModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&ratingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating")
	}

	return toRatingDomain(&ratingM), nil
}

// Create inserts a new rating.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)

	if err := repo.db.WithContext(ctx).Omit("User", "Store").Create(ratingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return ratingReferenceError(err)
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError(domainerrors.FieldViolation{
				Field:   "rating",
				Message: "must be between 1 and 5",
			})
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt
	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// ratingReferenceError maps a foreign key violation on insert to the missing side.
// A rater deleted mid-request no longer holds a valid session.
func ratingReferenceError(err error) error {
	if pgConstraintName(err) == ratingsUserFKey {
		return domainerrors.ErrUnauthenticated.WrapMessage("rating user no longer exists")
	}

	return domainerrors.ErrStoreNotFound.WrapMessage("invalid store reference")
}

// Update replaces the rating value in place.
func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	ratingM := fromRatingDomain(rating)
	ratingM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(ratingM).
		Select("rating", "updated_at").
		Updates(ratingM)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrRatingNotFound
	}

	rating.UpdatedAt = ratingM.UpdatedAt

	return nil
}

// SummarizeByStore computes count and sum of the store's ratings.
func (repo *ratingRepository) SummarizeByStore(ctx context.Context, storeID int64) (entity.RatingAggregate, error) {
	var summary struct {
		Count int64
		Sum   int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("store_id = ?", storeID).
		Scan(&summary).Error; err != nil {
		return entity.RatingAggregate{}, domainerrors.NewDatabaseExecuteError(err, "failed to summarize ratings")
	}

	return entity.RatingAggregate{Count: summary.Count, Sum: summary.Sum}, nil
}

// FindByStore returns a store's ratings with rater summaries, newest first.
func (repo *ratingRepository) FindByStore(ctx context.Context, storeID int64, limit int) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	db := repo.db.WithContext(ctx).
		Preload("User").
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	if err := db.Find(&ratingModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find ratings by store")
	}

	return toRatingDomains(ratingModels), nil
}

// FindByUser returns one page of a user's ratings with store summaries.
func (repo *ratingRepository) FindByUser(ctx context.Context, userID int64, page entity.PageRequest) ([]*entity.Rating, int64, error) {
	db := repo.db.WithContext(ctx).Model(&model.RatingModel{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count ratings by user")
	}

	var ratingModels []*model.RatingModel
	db = db.Preload("Store").Order("created_at DESC").Order("id DESC")
	if err := applyPage(db, page).Find(&ratingModels).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to find ratings by user")
	}

	return toRatingDomains(ratingModels), total, nil
}

// FindUserRatingsForStores maps store id to the user's rating for the listed stores.
func (repo *ratingRepository) FindUserRatingsForStores(ctx context.Context, userID int64, storeIDs []int64) (map[int64]int, error) {
	result := make(map[int64]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		StoreID int64
		Rating  int
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Select("store_id", "rating").
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Scan(&rows).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user ratings")
	}

	for _, row := range rows {
		result[row.StoreID] = row.Rating
	}

	return result, nil
}

// FindRecentByOwner returns the newest ratings across every store of an owner.
func (repo *ratingRepository) FindRecentByOwner(ctx context.Context, ownerID int64, limit int) ([]*entity.Rating, error) {
	var ratingModels []*model.RatingModel

	db := repo.db.WithContext(ctx).
		Select("ratings.*").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("stores.owner_id = ?", ownerID).
		Preload("User").
		Preload("Store").
		Order("ratings.created_at DESC").
		Order("ratings.id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}

	if err := db.Find(&ratingModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find recent ratings by owner")
	}

	return toRatingDomains(ratingModels), nil
}

// FindStoreIDsByUser returns the ids of the stores a user has rated.
func (repo *ratingRepository) FindStoreIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RatingModel{}).
		Where("user_id = ?", userID).
		Order("store_id ASC").
		Pluck("store_id", &ids).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find rated stores")
	}

	return ids, nil
}

// Count returns the number of ratings.
func (repo *ratingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.RatingModel{}).Count(&total).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count ratings")
	}

	return total, nil
}

// --- Mapper Functions ---

func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Rating:    data.Rating,
		User:      toUserSummary(data.User),
		Store:     toStoreSummary(data.Store),
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toRatingDomains(data []*model.RatingModel) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(data))
	for _, ratingM := range data {
		ratings = append(ratings, toRatingDomain(ratingM))
	}

	return ratings
}

func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	return &model.RatingModel{
		ID:        data.ID,
		UserID:    data.UserID,
		StoreID:   data.StoreID,
		Rating:    data.Rating,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
