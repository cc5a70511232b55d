package postgres

import (
	"context"
	"slices"
	"time"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	storeSearchColumns = []string{"name", "email", "address"}
	storeSortColumns   = []string{"id", "name", "email", "address", "avg_rating", "ratings_count", "created_at"}
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// FindByID retrieves a store and its owner.
func (repo *storeRepository) FindByID(ctx context.Context, id int64) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	return toStoreDomain(&storeM), nil
}

// FindByIDForUpdate retrieves a store with SELECT ... FOR UPDATE.
func (repo *storeRepository) FindByIDForUpdate(ctx context.Context, id int64) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to lock store")
	}

	return toStoreDomain(&storeM), nil
}

// FindByEmail retrieves a store by email.
func (repo *storeRepository) FindByEmail(ctx context.Context, email string) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by email")
	}

	return toStoreDomain(&storeM), nil
}

// Create persists a new store with an empty aggregate.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)
	storeM.AvgRating = 0
	storeM.RatingsCount = 0

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOwnerNotFound.WrapMessage("invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.AvgRating = 0
	store.RatingsCount = 0
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Update modifies the descriptive columns and owner of a store.
func (repo *storeRepository) Update(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)
	storeM.UpdatedAt = time.Now()

	result := repo.db.WithContext(ctx).
		Model(storeM).
		Select("name", "email", "address", "owner_id", "updated_at").
		Updates(storeM)
	if err := result.Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreAlreadyExists.WrapMessage("email already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrOwnerNotFound.WrapMessage("invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update store")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStoreNotFound
	}

	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// Delete removes a store. Its ratings are removed by ON DELETE CASCADE.
func (repo *storeRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.StoreModel{}, id)
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete store")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStoreNotFound
	}

	return nil
}

// List returns one page of stores with owners.
func (repo *storeRepository) List(ctx context.Context, query entity.ListQuery) ([]*entity.Store, int64, error) {
	db := repo.db.WithContext(ctx).Model(&model.StoreModel{})
	db = applySearch(db, query.Search, query.SearchFields, storeSearchColumns)

	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count stores")
	}

	var storeModels []*model.StoreModel
	db = applyOrder(db.Preload("Owner"), query.Sort, storeSortColumns, "created_at")
	if err := applyPage(db, query.Page).Find(&storeModels).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list stores")
	}

	return toStoreDomains(storeModels), total, nil
}

// FindByOwner returns every store of an owner, newest first.
func (repo *storeRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&storeModels).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find stores by owner")
	}

	return toStoreDomains(storeModels), nil
}

// LockByIDs takes row locks in ascending id order so concurrent writers cannot deadlock.
func (repo *storeRepository) LockByIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var locked []int64
	if err := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sorted).
		Order("id ASC").
		Pluck("id", &locked).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to lock stores")
	}

	return locked, nil
}

// UpdateAggregate writes the derived rating columns.
func (repo *storeRepository) UpdateAggregate(ctx context.Context, id int64, avg float64, count int64) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"avg_rating":    avg,
			"ratings_count": count,
			"updated_at":    time.Now(),
		})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update store aggregate")
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStoreNotFound
	}

	return nil
}

// Count returns the number of stores.
func (repo *storeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.StoreModel{}).Count(&total).Error; err != nil {
		return 0, domainerrors.NewDatabaseExecuteError(err, "failed to count stores")
	}

	return total, nil
}

// --- Mapper Functions ---

func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Address:      data.Address,
		OwnerID:      data.OwnerID,
		Owner:        toUserSummary(data.Owner),
		AvgRating:    data.AvgRating,
		RatingsCount: data.RatingsCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toStoreDomains(data []*model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(data))
	for _, storeM := range data {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores
}

func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Address:      data.Address,
		OwnerID:      data.OwnerID,
		AvgRating:    data.AvgRating,
		RatingsCount: data.RatingsCount,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toStoreSummary(data *model.StoreModel) *entity.StoreSummary {
	if data == nil {
		return nil
	}

	return &entity.StoreSummary{ID: data.ID, Name: data.Name, Address: data.Address}
}
