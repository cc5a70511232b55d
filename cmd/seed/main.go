package main

import (
	"context"
	"log/slog"

	"storerating/config"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/domain/repository"
	"storerating/internal/infra/auth"
	logs "storerating/internal/infra/log"
	"storerating/internal/infra/persistence/postgres"
	"storerating/internal/infra/qrcode"
	"storerating/internal/infra/validation"
	"storerating/internal/usecase"
	"storerating/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const adminEmail = "admin@storeapp.com"

type seedParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Logger   *slog.Logger
	UserRepo repository.UserRepository
	AdminUC  usecase.AdminUsecase
	StoreUC  usecase.StoreUsecase
	RatingUC usecase.RatingUsecase
}

func main() {
	fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewStoreRepository,
			postgres.NewRatingRepository,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			qrcode.NewFromConfig,
			validation.New,
			impl.NewAdminService,
			impl.NewStoreService,
			impl.NewRatingService,
		),
		fx.Invoke(registerSeed),
	).Run()
}

// registerSeed runs after the database hook has connected and stops the app when done.
func registerSeed(params seedParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if err := seed(context.Background(), params); err != nil {
					params.Logger.Error("Seeding failed", slog.Any("error", err))
					code = 1
				}
				_ = params.Shutdown(fx.ExitCode(code))
			}()

			return nil
		},
	})
}

type demoUser struct {
	key   string
	input usecase.CreateUserInput
}

type demoStore struct {
	key      string
	ownerKey string
	input    usecase.StoreInput
}

type demoRating struct {
	userKey  string
	storeKey string
	value    float64
}

var (
	demoUsers = []demoUser{
		{key: "admin", input: usecase.CreateUserInput{
			Name: "System Administrator", Email: adminEmail, Password: "Admin123!",
			Address: "123 Admin Street, Administrative District, City 12345", Role: "ADMIN",
		}},
		{key: "john", input: usecase.CreateUserInput{
			Name: "John Smith - Regular Customer", Email: "john.smith@email.com", Password: "User123!",
			Address: "456 Main Street, Downtown District, City 12345", Role: "USER",
		}},
		{key: "sarah", input: usecase.CreateUserInput{
			Name: "Sarah Johnson - Store Owner", Email: "sarah.johnson@email.com", Password: "User123!",
			Address: "789 Business Avenue, Commercial District, City 12345", Role: "STORE_OWNER",
		}},
		{key: "mike", input: usecase.CreateUserInput{
			Name: "Mike Wilson - Another Customer", Email: "mike.wilson@email.com", Password: "User123!",
			Address: "321 Residential Road, Suburban Area, City 12345", Role: "USER",
		}},
	}

	demoStores = []demoStore{
		{key: "electronics", ownerKey: "sarah", input: usecase.StoreInput{
			Name: "Sarah's Electronics Store - Premium Tech Solutions", Email: "info@sarahselectronics.com",
			Address: "100 Technology Boulevard, Tech District, City 12345",
		}},
		{key: "coffee", ownerKey: "sarah", input: usecase.StoreInput{
			Name: "Mike's Coffee Corner - Artisan Coffee & Pastries", Email: "contact@mikescoffee.com",
			Address: "200 Coffee Street, Downtown District, City 12345",
		}},
	}

	demoRatings = []demoRating{
		{userKey: "john", storeKey: "electronics", value: 4},
		{userKey: "mike", storeKey: "electronics", value: 5},
		{userKey: "john", storeKey: "coffee", value: 4},
		{userKey: "mike", storeKey: "coffee", value: 5},
	}
)

// seed inserts the demo data through the usecases so aggregates are computed the normal way.
func seed(ctx context.Context, params seedParams) error {
	_, err := params.UserRepo.FindByEmail(ctx, adminEmail)
	if err == nil {
		params.Logger.Info("Demo data already present, skipping")

		return nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check existing data")
	}

	userIDs := make(map[string]int64, len(demoUsers))
	for _, u := range demoUsers {
		input := u.input
		user, err := params.AdminUC.CreateUser(ctx, &input)
		if err != nil {
			return errors.Wrapf(err, "failed to create user %s", u.input.Email)
		}
		userIDs[u.key] = user.ID
	}

	storeIDs := make(map[string]int64, len(demoStores))
	for _, s := range demoStores {
		input := s.input
		input.OwnerID = userIDs[s.ownerKey]
		store, err := params.StoreUC.CreateStore(ctx, &input)
		if err != nil {
			return errors.Wrapf(err, "failed to create store %s", s.input.Email)
		}
		storeIDs[s.key] = store.ID
	}

	for _, r := range demoRatings {
		value := r.value
		_, err := params.RatingUC.SubmitRating(ctx, &usecase.SubmitRatingInput{
			UserID:  userIDs[r.userKey],
			StoreID: storeIDs[r.storeKey],
			Rating:  &value,
		})
		if err != nil {
			return errors.Wrapf(err, "failed to rate %s as %s", r.storeKey, r.userKey)
		}
	}

	params.Logger.Info("Demo data seeded",
		slog.Int("users", len(demoUsers)),
		slog.Int("stores", len(demoStores)),
		slog.Int("ratings", len(demoRatings)),
	)

	return nil
}
