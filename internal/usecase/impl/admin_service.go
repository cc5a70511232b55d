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

// adminService implements the AdminUsecase interface.
type adminService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	hasher     service.PasswordHasher
	validator  service.InputValidator
	pager      pager
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	StoreRepo  repository.StoreRepository
	RatingRepo repository.RatingRepository
	Hasher     service.PasswordHasher
	Validator  service.InputValidator
	Config     *config.Config
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		storeRepo:  params.StoreRepo,
		ratingRepo: params.RatingRepo,
		hasher:     params.Hasher,
		validator:  params.Validator,
		pager:      newPager(params.Config),
		logger:     params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard returns point-in-time platform totals.
func (srv *adminService) Dashboard(ctx context.Context) (*entity.AdminDashboard, error) {
	users, err := srv.userRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	stores, err := srv.storeRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}

	ratings, err := srv.ratingRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	return &entity.AdminDashboard{TotalUsers: users, TotalStores: stores, TotalRatings: ratings}, nil
}

// ListUsers searches name, email and address with an optional role filter.
func (srv *adminService) ListUsers(ctx context.Context, params usecase.ListParams) (*entity.Page[*entity.User], error) {
	query, err := srv.pager.query(params, userListRules)
	if err != nil {
		return nil, err
	}

	users, total, err := srv.userRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return &entity.Page[*entity.User]{Items: users, PageInfo: entity.NewPageInfo(query.Page, total)}, nil
}

// GetUser returns a user with the stores they own.
func (srv *adminService) GetUser(ctx context.Context, id int64) (*entity.UserDetail, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	stores, err := srv.storeRepo.FindByOwner(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owned stores")
	}

	return &entity.UserDetail{User: user, Stores: stores}, nil
}

// CreateUser creates an account with any role.
func (srv *adminService) CreateUser(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)

	extra := passwordViolations(srv.hasher, "password", input.Password)
	role, roleViolation := parseRoleField(input.Role)
	extra = append(extra, roleViolation...)
	if err := validateInput(srv.validator, input, extra...); err != nil {
		return nil, err
	}

	_, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Role:         role,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created by admin", slog.Int64("userID", user.ID), slog.String("role", role.String()))

	return user, nil
}

// UpdateUser edits any user. The email must not belong to a different user.
func (srv *adminService) UpdateUser(ctx context.Context, id int64, input *usecase.UpdateUserInput) (*entity.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = normalizeEmail(input.Email)
	input.Address = strings.TrimSpace(input.Address)

	var extra []domainerrors.FieldViolation
	if input.Password != "" {
		extra = passwordViolations(srv.hasher, "password", input.Password)
	}
	role, roleViolation := parseRoleField(input.Role)
	extra = append(extra, roleViolation...)
	if err := validateInput(srv.validator, input, extra...); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if input.Email != user.Email {
		other, err := srv.userRepo.FindByEmail(ctx, input.Email)
		if err == nil && other.ID != id {
			return nil, domainerrors.ErrUserAlreadyExists
		}
		if err != nil && !errors.Is(err, domainerrors.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to check existing email")
		}
	}

	if input.Password != "" {
		hash, err := srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	user.Name = input.Name
	user.Email = input.Email
	user.Address = input.Address
	user.Role = role
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// DeleteUser removes a user and recomputes every store they had rated.
// Stores owned by the user cascade away with their ratings.
func (srv *adminService) DeleteUser(ctx context.Context, actingID, targetID int64) error {
	if _, err := srv.userRepo.FindByID(ctx, targetID); err != nil {
		return errors.Wrap(err, "failed to find user")
	}

	if actingID == targetID {
		return domainerrors.ErrCannotDeleteSelf
	}

	var affected int
	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		userRepo := factory.NewUserRepository()
		storeRepo := factory.NewStoreRepository()
		ratingRepo := factory.NewRatingRepository()

		// Ratings the user inserts after this point wait on the user row and then fail,
		// so the store set read below is complete.
		if _, err := userRepo.FindByIDForUpdate(ctx, targetID); err != nil {
			return errors.Wrap(err, "failed to lock user")
		}

		storeIDs, err := ratingRepo.FindStoreIDsByUser(ctx, targetID)
		if err != nil {
			return errors.Wrap(err, "failed to find rated stores")
		}

		if _, err := storeRepo.LockByIDs(ctx, storeIDs); err != nil {
			return errors.Wrap(err, "failed to lock rated stores")
		}

		if err := userRepo.Delete(ctx, targetID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}

		// The cascade may have removed some of the locked stores along with the user.
		for _, storeID := range storeIDs {
			_, err := recomputeStoreAggregate(ctx, storeRepo, ratingRepo, storeID)
			if errors.Is(err, domainerrors.ErrStoreNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			affected++
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete user", slog.Int64("userID", targetID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute user deletion transaction")
	}

	srv.log(ctx).Info("User deleted", slog.Int64("userID", targetID), slog.Int("recomputedStores", affected))

	return nil
}

func parseRoleField(raw string) (entity.Role, []domainerrors.FieldViolation) {
	if strings.TrimSpace(raw) == "" {
		// The required tag reports the missing value.
		return "", nil
	}

	role, ok := entity.ParseRole(raw)
	if !ok {
		return "", []domainerrors.FieldViolation{{Field: "role", Message: "must be one of ADMIN USER STORE_OWNER"}}
	}

	return role, nil
}
