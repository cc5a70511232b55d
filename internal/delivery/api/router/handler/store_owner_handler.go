package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"storerating/internal/delivery/api/response"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreOwnerHandlerParams holds dependencies for StoreOwnerHandler, injected by Fx.
type StoreOwnerHandlerParams struct {
	fx.In

	StoreOwnerUC usecase.StoreOwnerUsecase
	Logger       *slog.Logger
}

// StoreOwnerHandler serves store owners their own stores and ratings.
type StoreOwnerHandler struct {
	storeOwnerUC usecase.StoreOwnerUsecase
	logger       *slog.Logger
}

// NewStoreOwnerHandler is the constructor for StoreOwnerHandler.
func NewStoreOwnerHandler(params StoreOwnerHandlerParams) *StoreOwnerHandler {
	return &StoreOwnerHandler{
		storeOwnerUC: params.StoreOwnerUC,
		logger:       params.Logger,
	}
}

// Dashboard handles GET /store-owner/dashboard.
func (h *StoreOwnerHandler) Dashboard(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	dash, err := h.storeOwnerUC.Dashboard(c.Request().Context(), owner.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dash)
}

// ListStores handles GET /store-owner/stores.
func (h *StoreOwnerHandler) ListStores(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	stores, err := h.storeOwnerUC.ListOwnedStores(c.Request().Context(), owner.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stores)
}

// GetStoreRatings handles GET /store-owner/stores/:id/ratings.
func (h *StoreOwnerHandler) GetStoreRatings(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	out, err := h.storeOwnerUC.GetOwnedStoreRatings(c.Request().Context(), owner.ID, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, out)
}

// GetStoreQR handles GET /store-owner/stores/:id/qr and returns a PNG.
func (h *StoreOwnerHandler) GetStoreQR(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.storeOwnerUC.GenerateStoreQR(c.Request().Context(), owner.ID, storeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.PNG(c, "store-"+strconv.FormatInt(storeID, 10)+"-qr.png", png)
}
