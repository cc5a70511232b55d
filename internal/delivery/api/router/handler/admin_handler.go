package handler

import (
	"log/slog"
	"net/http"

	"storerating/internal/delivery/api/response"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	StoreUC usecase.StoreUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the administrator dashboard and the user and store directories.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	storeUC usecase.StoreUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		storeUC: params.StoreUC,
		logger:  params.Logger,
	}
}

// Dashboard returns platform totals.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	dash, err := h.adminUC.Dashboard(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dash)
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, err := h.adminUC.ListUsers(c.Request().Context(), listParams(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetUser handles GET /admin/users/:id.
func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.adminUC.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail)
}

// CreateUser handles POST /admin/users.
func (h *AdminHandler) CreateUser(c echo.Context) error {
	var input usecase.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	user, err := h.adminUC.CreateUser(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT /admin/users/:id.
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input usecase.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}

	user, err := h.adminUC.UpdateUser(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteUser(c.Request().Context(), actor.ID, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "User deleted successfully")
}

// ListStores handles GET /admin/stores.
func (h *AdminHandler) ListStores(c echo.Context) error {
	page, err := h.storeUC.ListStores(c.Request().Context(), listParams(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetStore handles GET /admin/stores/:id.
func (h *AdminHandler) GetStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.storeUC.GetStore(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, detail)
}

// CreateStore handles POST /admin/stores.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var input usecase.StoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	store, err := h.storeUC.CreateStore(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, store)
}

// UpdateStore handles PUT /admin/stores/:id.
func (h *AdminHandler) UpdateStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input usecase.StoreInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	store, err := h.storeUC.UpdateStore(c.Request().Context(), id, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, store)
}

// DeleteStore handles DELETE /admin/stores/:id.
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.storeUC.DeleteStore(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Store deleted successfully")
}
