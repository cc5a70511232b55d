package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	mockRepo "storerating/internal/mocks/repository"
	mockSvc "storerating/internal/mocks/service"
	"storerating/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratingFixture struct {
	env   *testEnv
	owner *entity.User
	users []*entity.User
	store *entity.Store
}

func newRatingFixture(t *testing.T, users int) *ratingFixture {
	t.Helper()

	env := newTestEnv(t)
	f := &ratingFixture{env: env}
	f.owner = env.seedUser(t, "Store Owner", "owner@example.com", entity.RoleStoreOwner)
	for i := range users {
		f.users = append(f.users, env.seedUser(t, "Rater "+strconv.Itoa(i), "rater"+strconv.Itoa(i)+"@example.com", entity.RoleUser))
	}
	f.store = env.seedStore(t, "Corner Cafe", "cafe@example.com", f.owner.ID)

	return f
}

func (f *ratingFixture) aggregate(t *testing.T) (float64, int64) {
	t.Helper()

	avg, count, ok := f.env.db.StoreAggregate(f.store.ID)
	require.True(t, ok)

	return avg, count
}

func TestRatingService_SubmitRating_Aggregates(t *testing.T) {
	f := newRatingFixture(t, 3)

	for i, v := range []float64{4, 5, 3} {
		out := f.env.rate(t, f.users[i].ID, f.store.ID, v)
		assert.True(t, out.Created)
	}

	avg, count := f.aggregate(t)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, int64(3), count)
}

func TestRatingService_SubmitRating_UpsertKeepsLastValue(t *testing.T) {
	f := newRatingFixture(t, 1)
	userID := f.users[0].ID

	first := f.env.rate(t, userID, f.store.ID, 4)
	second := f.env.rate(t, userID, f.store.ID, 5)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.Rating.ID, second.Rating.ID)
	assert.Equal(t, 5, second.Rating.Rating)

	avg, count := f.aggregate(t)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, int64(1), count)
	assert.Len(t, f.env.db.RatingsOf(f.store.ID), 1)
}

func TestRatingService_SubmitRating_Idempotent(t *testing.T) {
	f := newRatingFixture(t, 1)
	userID := f.users[0].ID

	f.env.rate(t, userID, f.store.ID, 3)
	avgBefore, countBefore := f.aggregate(t)
	f.env.rate(t, userID, f.store.ID, 3)
	avgAfter, countAfter := f.aggregate(t)

	assert.Equal(t, avgBefore, avgAfter)
	assert.Equal(t, countBefore, countAfter)
	assert.Len(t, f.env.db.RatingsOf(f.store.ID), 1)
}

func TestRatingService_SubmitRating_RoundsHalfUp(t *testing.T) {
	// 4+4+4+4+4+4+5+4 = 33 over 8 ratings is 4.125.
	f := newRatingFixture(t, 8)

	for i, v := range []float64{4, 4, 4, 4, 4, 4, 5, 4} {
		f.env.rate(t, f.users[i].ID, f.store.ID, v)
	}

	avg, count := f.aggregate(t)
	assert.Equal(t, 4.13, avg)
	assert.Equal(t, int64(8), count)
}

func TestRatingService_SubmitRating_InvalidValues(t *testing.T) {
	f := newRatingFixture(t, 1)
	ctx := context.Background()

	tests := []struct {
		name   string
		rating *float64
		msg    string
	}{
		{name: "missing", rating: nil, msg: "is required"},
		{name: "zero", rating: ptr(0.0), msg: "must be an integer between 1 and 5"},
		{name: "six", rating: ptr(6.0), msg: "must be an integer between 1 and 5"},
		{name: "fractional", rating: ptr(3.5), msg: "must be an integer between 1 and 5"},
		{name: "negative", rating: ptr(-1.0), msg: "must be an integer between 1 and 5"},
		{name: "huge", rating: ptr(1e300), msg: "must be an integer between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.env.ratings.SubmitRating(ctx, &usecase.SubmitRatingInput{
				UserID:  f.users[0].ID,
				StoreID: f.store.ID,
				Rating:  tt.rating,
			})

			var verr *domainerrors.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, "rating", verr.Violations[0].Field)
			assert.Equal(t, tt.msg, verr.Violations[0].Message)
		})
	}

	_, count := f.aggregate(t)
	assert.Zero(t, count)
}

func TestRatingService_SubmitRating_UnknownStoreWinsOverValidation(t *testing.T) {
	f := newRatingFixture(t, 1)

	_, err := f.env.ratings.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  f.users[0].ID,
		StoreID: 9999,
		Rating:  ptr(9.0),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))
	assert.False(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestRatingService_SubmitRating_DeletedUserIsUnauthenticated(t *testing.T) {
	f := newRatingFixture(t, 1)
	require.NoError(t, f.env.db.Users().Delete(context.Background(), f.users[0].ID))

	_, err := f.env.ratings.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  f.users[0].ID,
		StoreID: f.store.ID,
		Rating:  ptr(4.0),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrUnauthenticated))
	assert.False(t, errors.Is(err, domainerrors.ErrStoreNotFound))
	assert.Empty(t, f.env.db.RatingsOf(f.store.ID))
}

func TestRatingService_SubmitRating_RollsBackOnFailure(t *testing.T) {
	f := newRatingFixture(t, 1)
	f.env.db.FailOn("StoreRepository.UpdateAggregate", errors.New("disk full"))

	_, err := f.env.ratings.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
		UserID:  f.users[0].ID,
		StoreID: f.store.ID,
		Rating:  ptr(4.0),
	})

	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, f.env.db.RatingsOf(f.store.ID))
}

func TestRatingService_SubmitRating_Concurrent(t *testing.T) {
	f := newRatingFixture(t, 20)

	var wg sync.WaitGroup
	for i, u := range f.users {
		wg.Add(1)
		go func(userID int64, value float64) {
			defer wg.Done()
			_, err := f.env.ratings.SubmitRating(context.Background(), &usecase.SubmitRatingInput{
				UserID:  userID,
				StoreID: f.store.ID,
				Rating:  &value,
			})
			assert.NoError(t, err)
		}(u.ID, float64(i%5+1))
	}
	wg.Wait()

	// Values cycle 1..5 four times, so the mean is exactly 3.
	avg, count := f.aggregate(t)
	assert.Equal(t, int64(20), count)
	assert.Equal(t, 3.0, avg)
}

func TestRatingService_SubmitRatingFromQR(t *testing.T) {
	f := newRatingFixture(t, 1)
	ctx := context.Background()

	png, err := f.env.storeOwner.GenerateStoreQR(ctx, f.owner.ID, f.store.ID)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	payload := `{"store_id":` + strconv.FormatInt(f.store.ID, 10) + `,"type":"store_rating"}`
	out, err := f.env.ratings.SubmitRatingFromQR(ctx, &usecase.SubmitRatingFromQRInput{
		UserID: f.users[0].ID,
		QRData: payload,
		Rating: ptr(2.0),
	})
	require.NoError(t, err)
	assert.Equal(t, f.store.ID, out.Rating.StoreID)

	_, err = f.env.ratings.SubmitRatingFromQR(ctx, &usecase.SubmitRatingFromQRInput{
		UserID: f.users[0].ID,
		QRData: `{"store_id":1,"type":"coupon"}`,
		Rating: ptr(2.0),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidQRCode))
}

func TestRatingService_SubmitRatingFromQR_ParsesBeforeSubmitting(t *testing.T) {
	qr := mockSvc.NewMockQRCodeService(t)
	db := mockRepo.NewMemoryStore()
	srv := NewRatingService(RatingServiceParams{
		TxManager:  db,
		StoreRepo:  db.Stores(),
		RatingRepo: db.Ratings(),
		QRService:  qr,
		Config:     testConfig(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	qr.EXPECT().ParseStoreQR("scanned").Return(int64(42), nil)

	_, err := srv.SubmitRatingFromQR(context.Background(), &usecase.SubmitRatingFromQRInput{
		UserID: 1,
		QRData: "scanned",
		Rating: ptr(5.0),
	})

	assert.True(t, errors.Is(err, domainerrors.ErrStoreNotFound))
}

func TestRatingService_BrowseStores(t *testing.T) {
	f := newRatingFixture(t, 2)
	ctx := context.Background()
	other := f.env.seedStore(t, "Riverside Bakery House", "bakery@example.com", f.owner.ID)

	f.env.rate(t, f.users[0].ID, f.store.ID, 4)
	f.env.rate(t, f.users[1].ID, other.ID, 2)

	page, err := f.env.ratings.BrowseStores(ctx, f.users[0].ID, usecase.ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	// Default order is name ascending.
	assert.Equal(t, f.store.ID, page.Items[0].ID)
	require.NotNil(t, page.Items[0].UserRating)
	assert.Equal(t, 4, *page.Items[0].UserRating)
	assert.Nil(t, page.Items[1].UserRating)
	assert.Equal(t, 2.0, page.Items[1].AvgRating)

	page, err = f.env.ratings.BrowseStores(ctx, f.users[0].ID, usecase.ListParams{Search: "riverside"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, other.ID, page.Items[0].ID)

	// Email is not searchable for users.
	page, err = f.env.ratings.BrowseStores(ctx, f.users[0].ID, usecase.ListParams{Search: "bakery@"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(0), page.PageInfo.TotalItems)
}

func TestRatingService_BrowseStores_InvalidParams(t *testing.T) {
	f := newRatingFixture(t, 1)

	_, err := f.env.ratings.BrowseStores(context.Background(), f.users[0].ID, usecase.ListParams{
		Page:      "0",
		Limit:     "500",
		SortBy:    "password_hash",
		SortOrder: "sideways",
		Role:      "ADMIN",
	})

	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.ElementsMatch(t, []string{"page", "limit", "sortBy", "sortOrder", "role"}, verr.Fields())
}

func TestRatingService_ListMyRatings(t *testing.T) {
	f := newRatingFixture(t, 1)
	ctx := context.Background()
	other := f.env.seedStore(t, "Riverside Bakery House", "bakery@example.com", f.owner.ID)
	userID := f.users[0].ID

	f.env.rate(t, userID, f.store.ID, 4)
	f.env.rate(t, userID, other.ID, 1)

	page, err := f.env.ratings.ListMyRatings(ctx, userID, usecase.ListParams{Limit: "1"})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, other.ID, page.Items[0].StoreID)
	require.NotNil(t, page.Items[0].Store)
	assert.Equal(t, other.Name, page.Items[0].Store.Name)
	assert.Equal(t, entity.PageInfo{CurrentPage: 1, TotalPages: 2, TotalItems: 2, ItemsPerPage: 1}, page.PageInfo)
}
