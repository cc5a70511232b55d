package handler

import (
	"log/slog"
	"net/http"

	"storerating/internal/delivery/api/response"
	"storerating/internal/domain/entity"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// UserHandler serves rating users: browsing stores and submitting ratings.
type UserHandler struct {
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// RatingRequest is the body of a rating submission. Rating stays a float so
// that fractional values are rejected by validation instead of the decoder.
type RatingRequest struct {
	Rating *float64 `json:"rating"`
}

// QRRatingRequest is the body of a rating submitted from a scanned store QR code.
type QRRatingRequest struct {
	QRData string   `json:"qr_data" validate:"required"`
	Rating *float64 `json:"rating"`
}

// RatingResponse reports the stored rating.
type RatingResponse struct {
	Message string         `json:"message"`
	Rating  *entity.Rating `json:"rating"`
	Created bool           `json:"created"`
}

// BrowseStores handles GET /user/stores.
func (h *UserHandler) BrowseStores(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, err := h.ratingUC.BrowseStores(c.Request().Context(), user.ID, listParams(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// SubmitRating handles POST /user/stores/:id/rating.
func (h *UserHandler) SubmitRating(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	out, err := h.ratingUC.SubmitRating(c.Request().Context(), &usecase.SubmitRatingInput{
		UserID:  user.ID,
		StoreID: storeID,
		Rating:  req.Rating,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratingResponse(out))
}

// SubmitRatingFromQR handles POST /user/ratings/qr.
func (h *UserHandler) SubmitRatingFromQR(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req QRRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.ratingUC.SubmitRatingFromQR(c.Request().Context(), &usecase.SubmitRatingFromQRInput{
		UserID: user.ID,
		QRData: req.QRData,
		Rating: req.Rating,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ratingResponse(out))
}

// ListMyRatings handles GET /user/ratings.
func (h *UserHandler) ListMyRatings(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, err := h.ratingUC.ListMyRatings(c.Request().Context(), user.ID, listParams(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func ratingResponse(out *usecase.SubmitRatingOutput) RatingResponse {
	message := "Rating updated successfully"
	if out.Created {
		message = "Rating submitted successfully"
	}

	return RatingResponse{Message: message, Rating: out.Rating, Created: out.Created}
}
