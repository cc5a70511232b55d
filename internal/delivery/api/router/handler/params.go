// Package handler contains the HTTP handlers of the API.
package handler

import (
	"net/http"
	"strconv"

	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/response"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID parses a positive int64 path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   name,
			Message: "must be a positive integer",
		})
	}

	return id, nil
}

// listParams collects the list query parameters shared by every list endpoint.
func listParams(c echo.Context) usecase.ListParams {
	return usecase.ListParams{
		Page:      c.QueryParam("page"),
		Limit:     c.QueryParam("limit"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Search:    c.QueryParam("search"),
		Role:      c.QueryParam("role"),
	}
}

// currentUser returns the authenticated caller or fails with ErrUnauthenticated.
func currentUser(c echo.Context) (*entity.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return user, nil
}
