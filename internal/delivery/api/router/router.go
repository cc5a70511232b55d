// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storerating/internal/delivery/api/middleware"
	"storerating/internal/delivery/api/router/handler"
	"storerating/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	AdminHandler      *handler.AdminHandler
	StoreOwnerHandler *handler.StoreOwnerHandler
	UserHandler       *handler.UserHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	adminHandler      *handler.AdminHandler
	storeOwnerHandler *handler.StoreOwnerHandler
	userHandler       *handler.UserHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		adminHandler:      params.AdminHandler,
		storeOwnerHandler: params.StoreOwnerHandler,
		userHandler:       params.UserHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Middleware is attached per route so unknown paths under a prefix stay 404.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	authenticated := []echo.MiddlewareFunc{r.authMiddleware.Authenticate}
	admin := r.roleChain(entity.RoleAdmin)
	storeOwner := r.roleChain(entity.RoleStoreOwner)
	user := r.roleChain(entity.RoleUser)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)

		authGroup.PUT("/update-password", r.authHandler.UpdatePassword, authenticated...)
		authGroup.GET("/profile", r.authHandler.GetProfile, authenticated...)
		authGroup.PUT("/profile", r.authHandler.UpdateProfile, authenticated...)
		authGroup.GET("/verify", r.authHandler.GetProfile, authenticated...)
	}

	adminGroup := e.Group("/admin")
	{
		adminGroup.GET("/dashboard", r.adminHandler.Dashboard, admin...)

		adminGroup.GET("/users", r.adminHandler.ListUsers, admin...)
		adminGroup.POST("/users", r.adminHandler.CreateUser, admin...)
		adminGroup.GET("/users/:id", r.adminHandler.GetUser, admin...)
		adminGroup.PUT("/users/:id", r.adminHandler.UpdateUser, admin...)
		adminGroup.DELETE("/users/:id", r.adminHandler.DeleteUser, admin...)

		adminGroup.GET("/stores", r.adminHandler.ListStores, admin...)
		adminGroup.POST("/stores", r.adminHandler.CreateStore, admin...)
		adminGroup.GET("/stores/:id", r.adminHandler.GetStore, admin...)
		adminGroup.PUT("/stores/:id", r.adminHandler.UpdateStore, admin...)
		adminGroup.DELETE("/stores/:id", r.adminHandler.DeleteStore, admin...)
	}

	storeOwnerGroup := e.Group("/store-owner")
	{
		storeOwnerGroup.GET("/dashboard", r.storeOwnerHandler.Dashboard, storeOwner...)
		storeOwnerGroup.GET("/stores", r.storeOwnerHandler.ListStores, storeOwner...)
		storeOwnerGroup.GET("/stores/:id/ratings", r.storeOwnerHandler.GetStoreRatings, storeOwner...)
		storeOwnerGroup.GET("/stores/:id/qr", r.storeOwnerHandler.GetStoreQR, storeOwner...)
	}

	userGroup := e.Group("/user")
	{
		userGroup.GET("/stores", r.userHandler.BrowseStores, user...)
		userGroup.POST("/stores/:id/rating", r.userHandler.SubmitRating, user...)
		userGroup.POST("/ratings/qr", r.userHandler.SubmitRatingFromQR, user...)
		userGroup.GET("/ratings", r.userHandler.ListMyRatings, user...)
	}
}

// roleChain authenticates the caller and then requires the given role.
func (r *router) roleChain(role entity.Role) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		r.authMiddleware.Authenticate,
		r.authMiddleware.RequireRole(role),
	}
}
