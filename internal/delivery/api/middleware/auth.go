package middleware

import (
	"strings"

	deliverycontext "storerating/internal/delivery/context"
	"storerating/internal/domain/entity"
	domainerrors "storerating/internal/domain/errors"
	"storerating/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// contextKeyUser is the echo.Context key of the authenticated *entity.User.
const contextKeyUser = "currentUser"

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
}

// AuthMiddleware authenticates bearer tokens and gates routes by role.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC}
}

// Authenticate resolves the bearer token to the current user row.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("authorization header is missing")
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("authorization header must be a bearer token")
		}

		user, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(contextKeyUser, user)
		ctx := deliverycontext.WithActor(c.Request().Context(), deliverycontext.Actor{
			UserID: user.ID,
			Role:   user.Role.String(),
		})
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole allows only users whose role is one of roles. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domainerrors.ErrUnauthenticated
			}

			if !roleAllowed(user.Role, allowed) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

func roleAllowed(role entity.Role, allowed entity.Roles) bool {
	switch role {
	case entity.RoleAdmin, entity.RoleUser, entity.RoleStoreOwner:
		return allowed.Contains(role)
	default:
		return false
	}
}

// CurrentUser returns the user attached by Authenticate.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}
