package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"storerating/config"
	"storerating/internal/domain/entity"
	"storerating/internal/domain/service"
	"storerating/internal/infra/auth"
	"storerating/internal/infra/qrcode"
	"storerating/internal/infra/validation"
	mockRepo "storerating/internal/mocks/repository"
	"storerating/internal/usecase"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Secret1!"

// testEnv wires every usecase against one in-memory database.
type testEnv struct {
	db     *mockRepo.MemoryStore
	hasher service.PasswordHasher
	tokens service.TokenService

	auth       usecase.AuthUsecase
	admin      usecase.AdminUsecase
	stores     usecase.StoreUsecase
	ratings    usecase.RatingUsecase
	storeOwner usecase.StoreOwnerUsecase
}

func testConfig() *config.Config {
	cfg := &config.Config{
		Auth:             &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: config.DefaultPasswordStrength(),
		Pagination:       &config.PaginationConfig{DefaultLimit: 10, MaxLimit: 50},
		Stores:           &config.StoresConfig{RequireOwnerRole: true},
		QRCode:           &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M"},
	}
	cfg.SecretKey.Access = "test-access-secret"

	return cfg
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	return newTestEnvWithConfig(t, testConfig())
}

func newTestEnvWithConfig(t *testing.T, cfg *config.Config) *testEnv {
	t.Helper()

	db := mockRepo.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hasher := auth.NewBcryptHasher(cfg)
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	validator := validation.New()
	qr := qrcode.NewFromConfig(cfg)

	return &testEnv{
		db:     db,
		hasher: hasher,
		tokens: tokens,
		auth: NewAuthService(AuthServiceParams{
			UserRepo:     db.Users(),
			Hasher:       hasher,
			TokenService: tokens,
			Validator:    validator,
			Logger:       logger,
		}),
		admin: NewAdminService(AdminServiceParams{
			TxManager:  db,
			UserRepo:   db.Users(),
			StoreRepo:  db.Stores(),
			RatingRepo: db.Ratings(),
			Hasher:     hasher,
			Validator:  validator,
			Config:     cfg,
			Logger:     logger,
		}),
		stores: NewStoreService(StoreServiceParams{
			UserRepo:   db.Users(),
			StoreRepo:  db.Stores(),
			RatingRepo: db.Ratings(),
			Validator:  validator,
			Config:     cfg,
			Logger:     logger,
		}),
		ratings: NewRatingService(RatingServiceParams{
			TxManager:  db,
			StoreRepo:  db.Stores(),
			RatingRepo: db.Ratings(),
			QRService:  qr,
			Config:     cfg,
			Logger:     logger,
		}),
		storeOwner: NewStoreOwnerService(StoreOwnerServiceParams{
			StoreRepo:  db.Stores(),
			RatingRepo: db.Ratings(),
			QRService:  qr,
			Logger:     logger,
		}),
	}
}

// seedUser inserts a user directly, bypassing the usecases.
func (env *testEnv) seedUser(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()

	hash, err := env.hasher.Hash(testPassword)
	require.NoError(t, err)

	user := &entity.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      "1 Test Street",
		Role:         role,
	}
	require.NoError(t, env.db.Users().Create(context.Background(), user))

	return user
}

// seedStore inserts a store with a name padded to the minimum length.
func (env *testEnv) seedStore(t *testing.T, name, email string, ownerID int64) *entity.Store {
	t.Helper()

	if len(name) < 20 {
		name += strings.Repeat(" Store", 4)
	}
	store := &entity.Store{Name: name, Email: email, Address: "9 Market Road", OwnerID: ownerID}
	require.NoError(t, env.db.Stores().Create(context.Background(), store))

	return store
}

func (env *testEnv) rate(t *testing.T, userID, storeID int64, value float64) *usecase.SubmitRatingOutput {
	t.Helper()

	out, err := env.ratings.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  userID,
		StoreID: storeID,
		Rating:  &value,
	})
	require.NoError(t, err)

	return out
}

func ptr[T any](v T) *T {
	return &v
}
