package usecase

import (
	"context"

	"storerating/internal/domain/entity"
)

// SubmitRatingInput is one user's score for one store. Rating is nil when absent.
type SubmitRatingInput struct {
	UserID  int64
	StoreID int64
	Rating  *float64
}

// SubmitRatingFromQRInput identifies the store by a scanned QR payload.
type SubmitRatingFromQRInput struct {
	UserID int64
	QRData string
	Rating *float64
}

// SubmitRatingOutput reports the stored rating and whether it was newly created.
type SubmitRatingOutput struct {
	Rating  *entity.Rating
	Created bool
}

// RatingUsecase defines the operations of rating users.
type RatingUsecase interface {
	// SubmitRating upserts the rating and recomputes the store aggregate in one transaction.
	SubmitRating(ctx context.Context, input *SubmitRatingInput) (*SubmitRatingOutput, error)
	SubmitRatingFromQR(ctx context.Context, input *SubmitRatingFromQRInput) (*SubmitRatingOutput, error)
	ListMyRatings(ctx context.Context, userID int64, params ListParams) (*entity.Page[*entity.Rating], error)
	BrowseStores(ctx context.Context, userID int64, params ListParams) (*entity.Page[*entity.StoreWithUserRating], error)
}
