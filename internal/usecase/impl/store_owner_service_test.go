package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	mockRepo "storerating/internal/mocks/repository"
	mockSvc "storerating/internal/mocks/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreOwnerService_Dashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "Owner Person", "owner@example.com", entity.RoleStoreOwner)
	other := env.seedUser(t, "Other Owner", "other@example.com", entity.RoleStoreOwner)
	a := env.seedUser(t, "Rater A", "a@example.com", entity.RoleUser)
	b := env.seedUser(t, "Rater B", "b@example.com", entity.RoleUser)
	c := env.seedUser(t, "Rater C", "c@example.com", entity.RoleUser)

	cafe := env.seedStore(t, "Corner Cafe", "cafe@example.com", owner.ID)
	bakery := env.seedStore(t, "Riverside Bakery House", "bakery@example.com", owner.ID)
	foreign := env.seedStore(t, "Someone Elses Diner", "diner@example.com", other.ID)

	// cafe: 5, 4, 4 (4.33 over 3); bakery: 1 (1.00 over 1).
	env.rate(t, a.ID, cafe.ID, 5)
	env.rate(t, b.ID, cafe.ID, 4)
	env.rate(t, c.ID, cafe.ID, 4)
	env.rate(t, a.ID, bakery.ID, 1)
	env.rate(t, a.ID, foreign.ID, 5)

	dash, err := env.storeOwner.Dashboard(ctx, owner.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, dash.Stats.TotalStores)
	assert.Equal(t, int64(4), dash.Stats.TotalRatings)
	// (4.33*3 + 1.00*1) / 4 = 3.4975
	assert.Equal(t, 3.5, dash.Stats.OverallAvgRating)

	require.Len(t, dash.RecentRatings, 4)
	assert.Equal(t, bakery.ID, dash.RecentRatings[0].StoreID)
	for _, r := range dash.RecentRatings {
		assert.NotEqual(t, foreign.ID, r.StoreID)
	}
}

func TestStoreOwnerService_Dashboard_NoStores(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "Owner Person", "owner@example.com", entity.RoleStoreOwner)

	dash, err := env.storeOwner.Dashboard(context.Background(), owner.ID)
	require.NoError(t, err)

	assert.Empty(t, dash.Stores)
	assert.Equal(t, entity.OwnerStats{}, dash.Stats)
}

func TestStoreOwnerService_GetOwnedStoreRatings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "Owner Person", "owner@example.com", entity.RoleStoreOwner)
	other := env.seedUser(t, "Other Owner", "other@example.com", entity.RoleStoreOwner)
	user := env.seedUser(t, "Rater A", "a@example.com", entity.RoleUser)
	cafe := env.seedStore(t, "Corner Cafe", "cafe@example.com", owner.ID)
	foreign := env.seedStore(t, "Someone Elses Diner", "diner@example.com", other.ID)
	env.rate(t, user.ID, cafe.ID, 3)

	out, err := env.storeOwner.GetOwnedStoreRatings(ctx, owner.ID, cafe.ID)
	require.NoError(t, err)
	assert.Equal(t, cafe.ID, out.Store.ID)
	require.Len(t, out.Ratings, 1)
	require.NotNil(t, out.Ratings[0].User)
	assert.Equal(t, "a@example.com", out.Ratings[0].User.Email)

	_, err = env.storeOwner.GetOwnedStoreRatings(ctx, owner.ID, foreign.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))

	stores, err := env.storeOwner.ListOwnedStores(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, cafe.ID, stores[0].ID)
}

func TestStoreOwnerService_GenerateStoreQR(t *testing.T) {
	qr := mockSvc.NewMockQRCodeService(t)
	db := mockRepo.NewMemoryStore()
	srv := NewStoreOwnerService(StoreOwnerServiceParams{
		StoreRepo:  db.Stores(),
		RatingRepo: db.Ratings(),
		QRService:  qr,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx := context.Background()
	owner := &entity.User{Name: "Owner", Email: "owner@example.com", Role: entity.RoleStoreOwner}
	require.NoError(t, db.Users().Create(ctx, owner))
	store := &entity.Store{Name: "Downtown Coffee Roasters", Email: "coffee@example.com", Address: "1 Road", OwnerID: owner.ID}
	require.NoError(t, db.Stores().Create(ctx, store))

	qr.EXPECT().GenerateStoreQR(store.ID).Return([]byte("png"), nil).Once()

	png, err := srv.GenerateStoreQR(ctx, owner.ID, store.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png"), png)

	// Another owner never reaches the generator.
	_, err = srv.GenerateStoreQR(ctx, owner.ID+100, store.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))
}
